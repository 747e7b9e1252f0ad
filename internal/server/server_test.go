package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/report"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/server/ratelimit"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/storage"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

func record(title, city string, day int) types.JobRecord {
	return types.JobRecord{
		Title:              title,
		CompanyName:        "Acme",
		City:               city,
		Industry:           "محاسبة",
		CompanySize:        "50-100 موظف",
		PostingDate:        time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC),
		NumOfVacancies:     1,
		JobType:            types.JobTypeFullTime,
		JobLevel:           types.JobLevelSenior,
		Gender:             types.GenderNoPreference,
		RemoteMode:         types.RemoteOnSite,
		MinExperienceYears: types.KnownYears(2),
		MaxExperienceYears: types.KnownYears(5),
	}
}

func newTestServer(t *testing.T, rl *ratelimit.Config) *Server {
	t.Helper()
	ctx := context.Background()
	store, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "database.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Replace(ctx, types.MarketEgypt, []types.JobRecord{
		record("Accountant", "القاهرة", 1),
		record("Accountant", "الجيزة", 2),
		record("Graphic Design", "القاهرة", 3),
	}))

	s, err := New(Config{Addr: "127.0.0.1:0", Store: store, TopN: 10, RateLimit: rl})
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleListMarkets(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/markets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var markets []MarketInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &markets))
	assert.Equal(t, []MarketInfo{{Name: "egypt", Table: "EGYPT"}, {Name: "saudi-arabia", Table: "saudi-arabia"}}, markets)
}

func TestHandleReport(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("stored market", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/markets/egypt/report?top=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var rep report.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
		assert.Equal(t, 3, rep.Total)
		titles := rep.Section(report.SectionTitle)
		require.NotNil(t, titles)
		require.Len(t, titles.Rows, 1)
		assert.Equal(t, "Accountant", titles.Rows[0].Label)
		assert.Equal(t, 2, titles.Rows[0].Count)
	})

	t.Run("market never cleaned", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/markets/saudi-arabia/report", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "no clean table")
	})

	t.Run("unknown market", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/markets/mars/report", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad top", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/markets/egypt/report?top=x", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleListJobs(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name      string
		query     string
		wantTotal int
		wantJobs  int
	}{
		{name: "all", query: "", wantTotal: 3, wantJobs: 3},
		{name: "title filter", query: "?title=ACCOUNT", wantTotal: 2, wantJobs: 2},
		{name: "city filter", query: "?city=الجيزة", wantTotal: 1, wantJobs: 1},
		{name: "paged", query: "?limit=2&offset=2", wantTotal: 3, wantJobs: 1},
		{name: "offset past end", query: "?offset=10", wantTotal: 3, wantJobs: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/markets/egypt/jobs"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp JobsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Len(t, resp.Jobs, tt.wantJobs)
		})
	}

	rec := do(t, s, http.MethodGet, "/markets/egypt/jobs?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRuns(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/runs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var runs []storage.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	assert.Empty(t, runs)
}

func TestHandleNormalize(t *testing.T) {
	s := newTestServer(t, nil)

	body, _ := json.Marshal(NormalizeRequest{Market: "egypt", Titles: []string{"Senior Graphic Designer"}})
	rec := do(t, s, http.MethodPost, "/normalize", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []NormalizedTitle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Graphic Design", out[0].Normalized)
	assert.True(t, out[0].Matched)

	errorCases := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: `{`},
		{name: "unknown market", body: `{"market":"mars","titles":["x"]}`},
		{name: "no titles", body: `{"market":"egypt","titles":[]}`},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/normalize", []byte(tc.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	rl := &ratelimit.Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute, DefaultBurst: 2}
	s := newTestServer(t, rl)

	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodGet, "/runs", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
	}
	rec := do(t, s, http.MethodGet, "/runs", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "health is never limited")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "x"}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrTableNotFound{Market: "egypt"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
