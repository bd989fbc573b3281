package report_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

func fixtureSnapshot() *dataset.Snapshot {
	customers := []dataset.Customer{
		{CardNumber: "1", Gender: dataset.GenderMale, Generation: dataset.GenerationBoomers, Age: 67, City: "San Fernando", Cluster: 0},
		{CardNumber: "2", Gender: dataset.GenderFemale, Generation: dataset.GenerationSilent, Age: 80, City: "Calapan", Cluster: 1},
	}

	at := func(y, m int) time.Time { return time.Date(y, time.Month(m), 3, 9, 0, 0, 0, time.UTC) }

	txs := []dataset.Transaction{
		{Amount: decimal.NewFromInt(100), Category: category.GroceryPOS, Time: at(2020, 1), Generation: dataset.GenerationBoomers, CardNumber: "1"},
		{Amount: decimal.NewFromInt(200), Category: category.ShoppingNet, Time: at(2020, 1), Generation: dataset.GenerationBoomers, CardNumber: "1"},
		{Amount: decimal.NewFromInt(50), Category: category.Travel, Time: at(2020, 2), Generation: dataset.GenerationSilent, CardNumber: "2", Cluster: 1},
	}

	return dataset.NewSnapshot(customers, txs)
}
