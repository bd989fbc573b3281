package csvload_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset/csvload"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	customers := writeFile(t, dir, "users.csv", "gender,city,age,generation\nM,Pagadian,70,Baby Boomers\n")
	transactions := writeFile(t, dir, "final.csv", "amt,category,trans_datetime\n10,shopping_net,2020-03-01 12:00:00\n")

	snap, err := csvload.New(customers, transactions).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, snap.CustomerCount())
	require.Equal(t, 1, snap.TransactionCount())
	assert.Equal(t, category.TypeDigital, snap.Transactions()[0].CategoryType)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	dir := t.TempDir()
	customers := writeFile(t, dir, "users.csv", "gender,city,age,generation\nM,Pagadian,70,Baby Boomers\n")

	_, err := csvload.New(customers, filepath.Join(dir, "nope.csv")).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestLoader_Load_EmptyTable(t *testing.T) {
	dir := t.TempDir()
	customers := writeFile(t, dir, "users.csv", "gender,city,age,generation\n")
	transactions := writeFile(t, dir, "final.csv", "amt,category,trans_datetime\n10,travel,2020-03-01\n")

	_, err := csvload.New(customers, transactions).Load(context.Background())
	assert.ErrorIs(t, err, dataset.ErrEmptyTable)
}

func TestLoader_Load_LabelsFromCustomers(t *testing.T) {
	dir := t.TempDir()
	customers := writeFile(t, dir, "users.csv", "cc_num,gender,city,age,generation,cluster\n"+
		"1,M,Pagadian,70,Baby Boomers,0\n"+
		"2,F,Calapan,80,Silent Generation,1\n")
	transactions := writeFile(t, dir, "final.csv", "cc_num,amt,category,trans_datetime\n"+
		"1,10,grocery_pos,2020-03-01 12:00:00\n"+
		"2,20,grocery_pos,2020-03-02 12:00:00\n")

	snap, err := csvload.New(customers, transactions).Load(context.Background())
	require.NoError(t, err)

	txs := snap.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, 0, txs[0].Cluster)
	assert.Equal(t, dataset.GenerationBoomers, txs[0].Generation)
	assert.Equal(t, 1, txs[1].Cluster)
	assert.Equal(t, dataset.GenerationSilent, txs[1].Generation)

	clusters, generations := snap.Unlabelled()
	assert.Zero(t, clusters)
	assert.Zero(t, generations)
}

func TestLoader_Load_NoClusterAnywhere(t *testing.T) {
	dir := t.TempDir()
	customers := writeFile(t, dir, "users.csv", "gender,city,age,generation\nM,Pagadian,70,Baby Boomers\n")
	transactions := writeFile(t, dir, "final.csv", "amt,category,trans_datetime\n10,travel,2020-03-01\n")

	snap, err := csvload.New(customers, transactions).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.Unclustered, snap.Customers()[0].Cluster)
	assert.Equal(t, dataset.Unclustered, snap.Transactions()[0].Cluster)
}
