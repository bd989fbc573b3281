package aggregate_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

func tx(code string, amount string, year, month int, gen dataset.Generation) dataset.Transaction {
	return dataset.Transaction{
		Amount:       decimal.RequireFromString(amount),
		Category:     code,
		CategoryType: category.Classify(code),
		Time:         time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC),
		Year:         year,
		Month:        month,
		Generation:   gen,
	}
}
