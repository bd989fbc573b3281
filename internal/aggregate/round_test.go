package aggregate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/aacdash/internal/aggregate"
	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
)

func TestRoundUnits(t *testing.T) {
	type testCase struct {
		in   string
		want int64
	}

	tests := []testCase{
		{in: "45.5", want: 46},
		{in: "44.5", want: 44},
		{in: "44.51", want: 45},
		{in: "44.49", want: 44},
		{in: "0.5", want: 0},
		{in: "1.5", want: 2},
		{in: "100", want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.RoundUnits(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestMeanRounding_ThroughPivot(t *testing.T) {
	txs := []dataset.Transaction{
		tx(category.GroceryPOS, "45", 2020, 1, dataset.GenerationBoomers),
		tx(category.GroceryPOS, "46", 2020, 1, dataset.GenerationBoomers),
		tx(category.ShoppingNet, "44", 2020, 1, dataset.GenerationBoomers),
		tx(category.ShoppingNet, "45", 2020, 1, dataset.GenerationBoomers),
	}

	p := aggregate.SpendingByTypeAndGeneration(txs)

	v, ok := p.Cell(string(category.TypePhysical), string(dataset.GenerationBoomers))
	assert.True(t, ok)
	assert.Equal(t, int64(46), v)

	v, ok = p.Cell(string(category.TypeDigital), string(dataset.GenerationBoomers))
	assert.True(t, ok)
	assert.Equal(t, int64(44), v)
}
