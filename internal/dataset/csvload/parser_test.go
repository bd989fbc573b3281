package csvload_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset/csvload"
)

func TestParseTransactions(t *testing.T) {
	csv := `,cc_num,amt,category,trans_datetime,generation,year,month,label
0,4001,100.00,grocery_pos,2020-01-05 10:22:00,Baby Boomers,2020,1,2
1,4002,"$1,200.50",shopping_net,2020-01-09 08:00:00,Silent Generation,2020,1,0
2,4001,50,travel,2020-02-11 23:59:59,Baby Boomers,2020.0,2.0,2
`

	txs, err := csvload.ParseTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.True(t, decimal.NewFromInt(100).Equal(txs[0].Amount))
	assert.Equal(t, category.GroceryPOS, txs[0].Category)
	assert.Equal(t, time.Date(2020, 1, 5, 10, 22, 0, 0, time.UTC), txs[0].Time)
	assert.Equal(t, dataset.GenerationBoomers, txs[0].Generation)
	assert.Equal(t, "4001", txs[0].CardNumber)
	assert.Equal(t, 2, txs[0].Cluster)

	assert.True(t, decimal.RequireFromString("1200.50").Equal(txs[1].Amount))
	assert.Equal(t, dataset.GenerationSilent, txs[1].Generation)

	assert.Equal(t, 2020, txs[2].Year)
	assert.Equal(t, 2, txs[2].Month)
}

func TestParseTransactions_DerivesYearAndMonth(t *testing.T) {
	csv := `Category,AMT,trans_datetime
misc_net,12.5,2021-11-30
`

	txs, err := csvload.ParseTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, 2021, txs[0].Year)
	assert.Equal(t, 11, txs[0].Month)
	assert.Equal(t, dataset.Unclustered, txs[0].Cluster)
}

func TestParseTransactions_Errors(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantErr string
	}

	tests := []testCase{
		{
			name:    "empty file",
			csv:     "",
			wantErr: "missing required columns",
		},
		{
			name:    "missing amount column",
			csv:     "category,trans_datetime\ntravel,2020-01-01\n",
			wantErr: "amt",
		},
		{
			name:    "bad amount",
			csv:     "amt,category,trans_datetime\nabc,travel,2020-01-01\n",
			wantErr: "line 2: amount",
		},
		{
			name:    "bad timestamp",
			csv:     "amt,category,trans_datetime\n1,travel,01/02/2020\n",
			wantErr: "timestamp",
		},
		{
			name:    "month out of range",
			csv:     "amt,category,trans_datetime,month\n1,travel,2020-01-01,13\n",
			wantErr: "out of range",
		},
		{
			name:    "missing category",
			csv:     "amt,category,trans_datetime\n1,,2020-01-01\n",
			wantErr: "missing category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvload.ParseTransactions(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTransactions_SkipsBlankRows(t *testing.T) {
	csv := "amt,category,trans_datetime\n1,travel,2020-01-01\n,,\n2,home,2020-01-02\n"

	txs, err := csvload.ParseTransactions(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestParseCustomers(t *testing.T) {
	csv := `cc_num,gender,city,age,generation,cluster
4001,m,San Fernando,67,Baby Boomers,2
4002,F,Calapan,81.0,Silent Generation,0
`

	customers, err := csvload.ParseCustomers(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, dataset.Customer{
		CardNumber: "4001",
		Gender:     dataset.GenderMale,
		Generation: dataset.GenerationBoomers,
		Age:        67,
		City:       "San Fernando",
		Cluster:    2,
	}, customers[0])
	assert.Equal(t, 81, customers[1].Age)
}

func TestParseCustomers_BadAge(t *testing.T) {
	csv := "gender,city,age,generation\nF,Masbate,67.5,Baby Boomers\n"

	_, err := csvload.ParseCustomers(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
}

func TestHead(t *testing.T) {
	csv := "a,b\n1,2\n3,4\n5,6\n"

	header, rows, err := csvload.Head(strings.NewReader(csv), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, header)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rows)
}

func TestHead_NonPositiveCount(t *testing.T) {
	type testCase struct {
		name string
		n    int
	}

	tests := []testCase{
		{name: "zero", n: 0},
		{name: "negative", n: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, rows, err := csvload.Head(strings.NewReader("a,b\n1,2\n"), tt.n)
			require.NoError(t, err)

			assert.Equal(t, []string{"a", "b"}, header)
			assert.Empty(t, rows)
		})
	}
}
