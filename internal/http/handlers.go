package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zenledger/internal/core"
	"zenledger/internal/export"
	"zenledger/internal/ledger"
	applog "zenledger/internal/log"
)

const maxBodyBytes = 1 << 20

type summaryResponse struct {
	Year   int                   `json:"year"`
	Months [12]core.MonthlyStats `json:"months"`
}

type monthResponse struct {
	core.MonthView
	Distribution []core.Slice `json:"distribution"`
}

type transactionsResponse struct {
	Transactions []core.Transaction `json:"transactions"`
}

type createTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

// handleSummary serves the 12 per-month aggregates for a year.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := "summary-" + strconv.Itoa(year)
	months, found := s.summaryCache.Get(key)
	if !found {
		months = s.service.YearSummary(year)
		s.summaryCache.Set(key, months)
	} else {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "Summary cache hit", applog.FieldYear, year)
	}

	writeJSON(w, http.StatusOK, summaryResponse{Year: year, Months: months})
}

// handleMonth serves one month's drill-down with its category distribution.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := parseMonth(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey(year, month)
	resp, found := s.monthCache.Get(key)
	if !found {
		view := s.service.MonthView(year, month)
		resp = monthResponse{
			MonthView:    view,
			Distribution: core.RenderDistribution(view.Categories, view.Expense),
		}
		s.monthCache.Set(key, resp)
	} else {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "Month cache hit", applog.FieldYear, year, applog.FieldMonth, int(month))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, transactionsResponse{Transactions: s.service.Transactions()})
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	date := time.Now().UTC()
	if v := strings.TrimSpace(req.Date); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	tx, err := s.service.Record(r.Context(), ledger.RecordRequest{
		Description: strings.TrimSpace(req.Description),
		Amount:      core.Money{Cents: cents},
		Date:        date,
	})
	if err != nil {
		if r.Context().Err() != nil {
			// Client went away; nothing was stored.
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed recording transaction",
			applog.FieldError, err,
			applog.FieldDescription, req.Description)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusCreated, tx)
}

// handleTransactionByID handles DELETE /api/transactions/{id}. Deleting an
// unknown id still answers 204.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "DELETE")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.service.Remove(r.Context(), id); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed removing transaction", applog.FieldError, err, applog.FieldTransactionID, id)
		writeError(w, http.StatusInternalServerError, "failed to remove transaction")
		return
	}

	s.invalidateViews()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.settings.LoadSettings(r.Context())
		if err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed loading settings", applog.FieldError, err)
			settings = core.DefaultSettings()
		}
		writeJSON(w, http.StatusOK, settings)
	case http.MethodPut:
		var settings core.AppSettings
		body := io.LimitReader(r.Body, maxBodyBytes)
		if err := json.NewDecoder(body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := settings.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := s.settings.SaveSettings(r.Context(), settings); err != nil {
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed saving settings", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
		writeJSON(w, http.StatusOK, settings)
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

// handleExport serves the full collection as a JSON download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	settings, err := s.settings.LoadSettings(r.Context())
	if err != nil {
		settings = core.DefaultSettings()
	}

	data, err := export.MarshalSnapshot(s.service.Transactions(), settings)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed marshaling export", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+s.exportName(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func parseYear(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("year"))
	if v == "" {
		return time.Now().UTC().Year(), nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1 || year > 9999 {
		return 0, errInvalidYear
	}
	return year, nil
}

func parseMonth(r *http.Request) (time.Month, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return time.Now().UTC().Month(), nil
	}
	month, err := strconv.Atoi(v)
	if err != nil || month < 1 || month > 12 {
		return 0, errInvalidMonth
	}
	return time.Month(month), nil
}
