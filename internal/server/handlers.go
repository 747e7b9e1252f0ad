package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/report"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
	maxTitles       = 1000
	defaultRuns     = 20
)

// MarketInfo describes one market.
type MarketInfo struct {
	Name  string `json:"name"`
	Table string `json:"table"`
}

// JobsResponse is one page of a market table.
type JobsResponse struct {
	Market string            `json:"market"`
	Total  int               `json:"total"`
	Offset int               `json:"offset"`
	Limit  int               `json:"limit"`
	Jobs   []types.JobRecord `json:"jobs"`
}

// NormalizeRequest is the body of POST /normalize.
type NormalizeRequest struct {
	Market string   `json:"market"`
	Titles []string `json:"titles"`
}

// NormalizedTitle pairs a raw title with its canonical label.
type NormalizedTitle struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Matched    bool   `json:"matched"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListMarkets(w http.ResponseWriter, _ *http.Request) {
	markets := types.Markets()
	out := make([]MarketInfo, len(markets))
	for i, m := range markets {
		out[i] = MarketInfo{Name: m.String(), Table: m.Table()}
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) pathMarket(r *http.Request) (types.Market, error) {
	m, err := types.ParseMarket(r.PathValue("market"))
	if err != nil {
		return "", &ErrValidation{Field: "market", Message: err.Error()}
	}
	return m, nil
}

// handleReport aggregates a market table. ?top=N overrides the rows per section.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	m, err := s.pathMarket(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	topN, err := queryInt(r, "top", s.topN, 0, maxPageSize)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	records, err := s.store.Load(r.Context(), m)
	if err != nil {
		s.errorResponse(w, loadError(m.String(), err))
		return
	}
	s.jsonResponse(w, http.StatusOK, report.Build(m, records, topN))
}

// handleListJobs pages through a market table, optionally filtered by ?title= (case
// insensitive substring) and ?city= (exact).
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	m, err := s.pathMarket(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultPageSize, 1, maxPageSize)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, -1)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	records, err := s.store.Load(r.Context(), m)
	if err != nil {
		s.errorResponse(w, loadError(m.String(), err))
		return
	}

	title := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("title")))
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	filtered := records[:0:0]
	for _, rec := range records {
		if title != "" && !strings.Contains(strings.ToLower(rec.Title), title) {
			continue
		}
		if city != "" && rec.City != city {
			continue
		}
		filtered = append(filtered, rec)
	}

	resp := JobsResponse{Market: m.String(), Total: len(filtered), Offset: offset, Limit: limit, Jobs: []types.JobRecord{}}
	if offset < len(filtered) {
		end := min(offset+limit, len(filtered))
		resp.Jobs = filtered[offset:end]
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultRuns, 1, maxPageSize)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	runs, err := s.store.Runs(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleNormalize runs titles through a market's rule table. Matched is false for
// titles no rule changed.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	m, err := types.ParseMarket(req.Market)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "market", Message: err.Error()})
		return
	}
	if len(req.Titles) == 0 || len(req.Titles) > maxTitles {
		s.errorResponse(w, &ErrValidation{Field: "titles", Message: "between 1 and " + strconv.Itoa(maxTitles) + " titles required"})
		return
	}

	engine, err := s.engine(m)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	out := make([]NormalizedTitle, len(req.Titles))
	for i, raw := range req.Titles {
		before := titles.Preprocess(raw)
		after := engine.Apply(before)
		out[i] = NormalizedTitle{Raw: raw, Normalized: titles.TitleCase(after), Matched: after != before}
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// queryInt parses an optional integer query parameter within [lo, hi]. A negative hi
// means unbounded.
func queryInt(r *http.Request, name string, def, lo, hi int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || (hi >= 0 && n > hi) {
		return 0, &ErrValidation{Field: name, Message: "out of range or not an integer"}
	}
	return n, nil
}
