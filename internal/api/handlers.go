package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/arvelie/internal/arvelie"
	"github.com/zapponejosh/arvelie/internal/config"
	"github.com/zapponejosh/arvelie/internal/database"
	"github.com/zapponejosh/arvelie/internal/logger"
	"github.com/zapponejosh/arvelie/internal/season"
	"github.com/zapponejosh/arvelie/internal/view"
)

// maxBodyBytes caps request bodies on write endpoints.
const maxBodyBytes = 1 << 20

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
		now:    cfg.Now,
	}
}

func (h *Handlers) log(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context(), h.logger)
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.log(r).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetToday handles GET /api/v1/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	d, err := arvelie.FromTime(now)
	if err != nil {
		h.log(r).Error("failed to build today's date", slog.Any("error", err))
		WriteInternalError(w, "Failed to compute today's date")
		return
	}

	WriteSuccess(w, view.NewToday(d, now, h.cfg.TraditionalSeasons))
}

// Convert handles GET /api/v1/convert/{date}?offset=N
//
// The date may be ISO (2025-06-21) or Arvelie (25M03). The offset is added
// to two-digit Arvelie years and defaults to the configured one.
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	offset, err := h.yearOffset(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), CodeOutOfRange)
		return
	}

	d, ok := h.parseDate(w, chi.URLParam(r, "date"), offset)
	if !ok {
		return
	}

	WriteSuccess(w, view.NewDate(d))
}

// GetSeason handles GET /api/v1/season?date=&hour=&names=&traditional=
//
// date defaults to today and hour to the current hour. names (default true)
// selects names over numbers; traditional defaults to the configured mode.
func (h *Handlers) GetSeason(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := h.now()

	month := now.Month()
	if s := q.Get("date"); s != "" {
		offset, err := h.yearOffset(r)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), CodeOutOfRange)
			return
		}
		d, ok := h.parseDate(w, s, offset)
		if !ok {
			return
		}
		month = d.Gregorian().Month
	}

	hour := now.Hour()
	if s := q.Get("hour"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid hour: %q", s))
			return
		}
		hour = n
	}

	names, err := queryBool(q.Get("names"), true)
	if err != nil {
		WriteBadRequest(w, "names must be a boolean")
		return
	}
	traditional, err := queryBool(q.Get("traditional"), h.cfg.TraditionalSeasons)
	if err != nil {
		WriteBadRequest(w, "traditional must be a boolean")
		return
	}

	result, err := season.Classify(month, hour, traditional)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), CodeOutOfRange)
		return
	}

	WriteSuccess(w, view.NewSeason(result, month, hour, names))
}

// ListEntries handles GET /api/v1/entries?year=Y[&month=L]
//
// month is a letter A-Z, or "+" for the year-day and leap-day.
func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	yearStr := q.Get("year")
	if yearStr == "" {
		WriteBadRequest(w, "year parameter is required")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 0 || year > arvelie.MaxYear {
		WriteBadRequest(w, fmt.Sprintf("Invalid year: %q", yearStr))
		return
	}

	var entries []database.Entry
	if m := q.Get("month"); m != "" {
		month, perr := parseMonthLetter(m)
		if perr != nil {
			WriteBadRequest(w, perr.Error())
			return
		}
		entries, err = h.db.ListEntriesByMonth(ctx, year, month)
	} else {
		entries, err = h.db.ListEntriesByYear(ctx, year)
	}
	if err != nil {
		h.log(r).Error("failed to list entries", slog.Int("year", year), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve entries")
		return
	}

	WriteSuccess(w, map[string]any{
		"year":    year,
		"entries": entries,
	})
}

// GetEntry handles GET /api/v1/entries/{id}
func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.db.GetEntry(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Entry not found")
			return
		}
		h.log(r).Error("failed to get entry", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve entry")
		return
	}

	WriteSuccess(w, entry)
}

// GetEntryStats handles GET /api/v1/entries/stats
func (h *Handlers) GetEntryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetEntryStats(r.Context())
	if err != nil {
		h.log(r).Error("failed to get entry stats", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve statistics")
		return
	}

	WriteSuccess(w, stats)
}

// CreateEntry handles POST /api/v1/entries
func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
		Note string `json:"note"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.Date == "" {
		WriteBadRequest(w, "date is required")
		return
	}

	d, ok := h.parseDate(w, req.Date, h.cfg.YearOffset)
	if !ok {
		return
	}

	entry := database.NewEntry(d, strings.TrimSpace(req.Note))
	if err := h.db.CreateEntry(r.Context(), entry); err != nil {
		if errors.Is(err, database.ErrInvalidEntry) {
			WriteBadRequest(w, err.Error())
			return
		}
		h.log(r).Error("failed to create entry", slog.Any("error", err))
		WriteInternalError(w, "Failed to create entry")
		return
	}

	h.log(r).Info("entry created",
		slog.Int64("id", entry.ID),
		slog.String("date", entry.Arvelie),
	)

	WriteCreated(w, entry)
}

// DeleteEntry handles DELETE /api/v1/entries/{id}
func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteEntry(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Entry not found")
			return
		}
		h.log(r).Error("failed to delete entry", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to delete entry")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Entry deleted"})
}

// =============================================================================
// Request helpers
// =============================================================================

// parseDate parses an ISO or Arvelie date and writes a 400 on failure.
func (h *Handlers) parseDate(w http.ResponseWriter, s string, offset int) (*arvelie.Date, bool) {
	d, err := arvelie.Parse(s, arvelie.WithYearOffset(offset))
	if err != nil {
		code := CodeInvalidDate
		if arvelie.IsRangeError(err) {
			code = CodeOutOfRange
		}
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid date %q. Use YYYY-MM-DD or YYLDD (e.g. 25M03)", s), code)
		return nil, false
	}
	return d, true
}

// yearOffset reads ?offset=N, falling back to the configured offset.
func (h *Handlers) yearOffset(r *http.Request) (int, error) {
	s := r.URL.Query().Get("offset")
	if s == "" {
		return h.cfg.YearOffset, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || arvelie.ValidateYearOffset(n) != nil {
		return 0, fmt.Errorf("offset must be a multiple of 100 between 0 and %d", arvelie.MaxYearOffset)
	}
	return n, nil
}

// entryID reads the {id} path parameter and writes a 400 on failure.
func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid entry ID")
		return 0, false
	}
	return id, true
}

// parseMonthLetter maps "A".."Z" to 0..25 and "+" to arvelie.NoMonth.
// An unescaped "+" arrives from the query string as a space.
func parseMonthLetter(s string) (int, error) {
	if s == "+" || s == " " {
		return arvelie.NoMonth, nil
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c <= 'Z' {
			return int(c - 'A'), nil
		}
	}
	return 0, fmt.Errorf("month must be a letter A-Z or +, got %q", s)
}

func queryBool(s string, def bool) (bool, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseBool(s)
}

// decodeJSON decodes a JSON request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
