package report_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/dataset"
	reportHandler "github.com/MrJamesThe3rd/aacdash/internal/http/report"
	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

func fixtureService() *report.Service {
	customers := []dataset.Customer{
		{CardNumber: "1", Gender: dataset.GenderMale, Generation: dataset.GenerationBoomers, Age: 67, City: "San Fernando"},
		{CardNumber: "2", Gender: dataset.GenderFemale, Generation: dataset.GenerationSilent, Age: 80, City: "Calapan", Cluster: 1},
	}

	at := func(y, m int) time.Time { return time.Date(y, time.Month(m), 3, 9, 0, 0, 0, time.UTC) }

	txs := []dataset.Transaction{
		{Amount: decimal.NewFromInt(100), Category: category.GroceryPOS, Time: at(2020, 1), Generation: dataset.GenerationBoomers, CardNumber: "1"},
		{Amount: decimal.NewFromInt(200), Category: category.ShoppingNet, Time: at(2020, 1), Generation: dataset.GenerationBoomers, CardNumber: "1"},
		{Amount: decimal.NewFromInt(50), Category: category.Travel, Time: at(2020, 2), Generation: dataset.GenerationSilent, CardNumber: "2", Cluster: 1},
	}

	return report.NewService(dataset.NewSnapshot(customers, txs), report.Options{})
}

func newServer(svc *report.Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", reportHandler.NewHandler(svc).Routes)

	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestHandler_Status(t *testing.T) {
	type testCase struct {
		name string
		path string
		want int
	}

	tests := []testCase{
		{name: "pages", path: "/api/v1/pages", want: http.StatusOK},
		{name: "about page", path: "/api/v1/pages/about", want: http.StatusOK},
		{name: "results page", path: "/api/v1/pages/results", want: http.StatusOK},
		{name: "unknown page", path: "/api/v1/pages/appendix", want: http.StatusNotFound},
		{name: "categories", path: "/api/v1/categories", want: http.StatusOK},
		{name: "monthly", path: "/api/v1/spending/monthly", want: http.StatusOK},
		{name: "clusters", path: "/api/v1/clusters", want: http.StatusOK},
		{name: "cluster", path: "/api/v1/clusters/1", want: http.StatusOK},
		{name: "missing cluster", path: "/api/v1/clusters/7", want: http.StatusNotFound},
		{name: "invalid cluster id", path: "/api/v1/clusters/x", want: http.StatusBadRequest},
	}

	svc := fixtureService()
	h := newServer(svc)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.path)
			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusOK {
				assert.Equal(t, svc.Snapshot().ID.String(), rec.Header().Get(reportHandler.SnapshotHeader))
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestHandler_SpendingByType_NullCells(t *testing.T) {
	rec := get(t, newServer(fixtureService()), "/api/v1/spending/by-type")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Columns []string `json:"columns"`
		Rows    []struct {
			Key    string   `json:"key"`
			Label  string   `json:"label"`
			Values []*int64 `json:"values"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, []string{"Silent Generation", "Baby Boomers"}, body.Columns)
	require.Len(t, body.Rows, 3)

	assert.Equal(t, "Physical", body.Rows[0].Key)
	assert.Nil(t, body.Rows[0].Values[0])
	require.NotNil(t, body.Rows[0].Values[1])
	assert.Equal(t, int64(100), *body.Rows[0].Values[1])

	assert.Equal(t, "Others", body.Rows[2].Key)
	require.NotNil(t, body.Rows[2].Values[0])
	assert.Equal(t, int64(50), *body.Rows[2].Values[0])
	assert.Nil(t, body.Rows[2].Values[1])
}

func TestHandler_SpendingByCategory_Labels(t *testing.T) {
	rec := get(t, newServer(fixtureService()), "/api/v1/spending/by-category")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"columns": ["Silent Generation", "Baby Boomers"],
		"rows": [
			{"key": "grocery_pos", "label": "Physical Grocery", "values": [null, 100]},
			{"key": "shopping_net", "label": "Online Shopping", "values": [null, 200]},
			{"key": "travel", "label": "Travel", "values": [50, null]}
		]
	}`, rec.Body.String())
}

func TestHandler_SpendingByCategory_MissingLabel(t *testing.T) {
	snap := dataset.NewSnapshot(
		[]dataset.Customer{{Generation: dataset.GenerationBoomers}},
		[]dataset.Transaction{{Amount: decimal.NewFromInt(1), Category: "crypto_net", Generation: dataset.GenerationBoomers, Year: 2020, Month: 1}},
	)

	rec := get(t, newServer(report.NewService(snap, report.Options{})), "/api/v1/spending/by-category")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Monthly(t *testing.T) {
	rec := get(t, newServer(fixtureService()), "/api/v1/spending/monthly")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"year": 2020, "month": 1, "physical": 100, "digital": 200}]`, rec.Body.String())
}

func TestHandler_Categories(t *testing.T) {
	rec := get(t, newServer(fixtureService()), "/api/v1/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []struct {
		Code     string `json:"code"`
		Label    string `json:"label"`
		Type     string `json:"type"`
		Position int    `json:"position"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 15)

	assert.Equal(t, category.GroceryPOS, body[0].Code)
	assert.Equal(t, "Physical Grocery", body[0].Label)
	assert.Equal(t, "Physical", body[0].Type)
	assert.Equal(t, 0, body[0].Position)
	assert.Equal(t, category.GroceryNet, body[14].Code)
	assert.Equal(t, "Digital", body[14].Type)
}

func TestHandler_Page(t *testing.T) {
	rec := get(t, newServer(fixtureService()), "/api/v1/pages/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var content report.Content
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
	assert.Equal(t, report.PageSummary, content.Page)
	assert.Equal(t, "Summary", content.Title)
	assert.NotEmpty(t, content.Sections)
}
