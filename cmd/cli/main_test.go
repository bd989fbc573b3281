package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

const (
	customersCSV = "cc_num,gender,generation,age,city,cluster\n" +
		"1,M,Baby Boomers,67,San Fernando,0\n" +
		"2,F,Silent Generation,80,Calapan,1\n"
	transactionsCSV = "cc_num,amt,category,trans_datetime,generation,cluster\n" +
		"1,100,grocery_pos,2020-01-03 09:00:00,Baby Boomers,0\n" +
		"1,200,shopping_net,2020-01-03 10:00:00,Baby Boomers,0\n" +
		"2,50,travel,2020-02-03 09:00:00,Silent Generation,1\n"
)

func setupEnv(t *testing.T) {
	t.Helper()

	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		return path
	}

	t.Setenv("CUSTOMERS_CSV", write("users.csv", customersCSV))
	t.Setenv("TRANSACTIONS_CSV", write("final.csv", transactionsCSV))
	t.Setenv("RAW_CSV", filepath.Join(dir, "raw.csv"))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "aacdash.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "aacdash", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "import")
	assert.Contains(t, names, "pivot")
}

func TestPivot(t *testing.T) {
	type testCase struct {
		name     string
		args     []string
		wantErr  bool
		contains []string
	}

	tests := []testCase{
		{name: "by type table", args: []string{"pivot", "by-type"}, contains: []string{"Category Type", "Physical", "$100", report.NoData}},
		{name: "by category table", args: []string{"pivot", "by-category"}, contains: []string{"Online Shopping", "$200"}},
		{name: "monthly table", args: []string{"pivot", "monthly"}, contains: []string{"Jan 2020", "$100", "$200"}},
		{name: "unknown pivot", args: []string{"pivot", "by-city"}, wantErr: true},
		{name: "bad format", args: []string{"pivot", "monthly", "--format", "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)

			out, err := run(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestPivot_JSON(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "pivot", "monthly", "--format", "json")
	require.NoError(t, err)

	var tbl report.Table
	require.NoError(t, json.Unmarshal([]byte(out), &tbl))
	assert.Equal(t, []string{"Month", "Physical", "Digital"}, tbl.Columns)
	assert.Equal(t, [][]string{{"Jan 2020", "$100", "$200"}}, tbl.Rows)
}

func TestImportThenPivotFromDatabase(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 customers and 3 transactions")

	t.Setenv("DATA_SOURCE", "database")

	out, err = run(t, "pivot", "monthly", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 2020")
}
