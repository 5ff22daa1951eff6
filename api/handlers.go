/*
handlers.go - HTTP API handlers for the installment plan engine

PURPOSE:
  Exposes plan generation via REST. Handles HTTP request/response, JSON
  serialization, and delegates all money/date logic to the plan engine.

ENDPOINTS:
  Plans:
    POST   /api/plans/preview      Compute a plan without persisting (cached)
    POST   /api/plans              Compute and persist a plan
    GET    /api/plans              List persisted plans
    GET    /api/plans/{id}         Get a persisted plan with lines
    POST   /api/plans/{id}/discount Early-payment discount view of a plan
    POST   /api/plans/{id}/lines/{seq}/pay Mark a line paid

  Pricing:
    POST   /api/scholarship        Scholarship-netted plan (not persisted)
    POST   /api/upfront-price      Cash price quote

  Holidays:
    GET    /api/holidays           List stored holidays
    POST   /api/holidays           Add a holiday
    POST   /api/holidays/import    Import a JSON holiday bundle
    DELETE /api/holidays/{id}      Remove a holiday

REQUEST FLOW:
  1. Decode and validate input (validator/v10)
  2. Snapshot the holiday calendar from the store
  3. Call the engine
  4. Serialize response

ERROR HANDLING:
  - 400: Validation errors, invalid input (engine client errors)
  - 404: Plan not found
  - 422: Calendar exhausted (malformed holiday configuration)
  - 500: Storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/warp/installment-engine/cache"
	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/factory"
	"github.com/warp/installment-engine/money"
	"github.com/warp/installment-engine/plan"
	"github.com/warp/installment-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Cache    cache.Cache
	Log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler creates a new handler. A nil cache disables preview memoization;
// a nil logger falls back to the standard logrus logger.
func NewHandler(store *sqlite.Store, c cache.Cache, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:    store,
		Cache:    c,
		Log:      log,
		validate: validator.New(),
	}
}

// decodeAndValidate decodes the body into dst and runs struct validation.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// holidayCalendar snapshots the stored calendar for one request.
func (h *Handler) holidayCalendar(r *http.Request) (calendar.HolidayCalendar, error) {
	return h.Store.HolidayCalendar(r.Context())
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// PreviewPlan computes a plan without persisting it.
// POST /api/plans/preview
func (h *Handler) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	cal, err := h.holidayCalendar(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holiday calendar", err)
		return
	}

	// Previews are pure, so identical request + calendar means an identical
	// response; serve the cached body when we have one.
	key := previewCacheKey(req, cal)
	if h.Cache != nil {
		if body, ok := h.Cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(body))
			return
		}
	}

	planReq, err := req.toPlanRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid first_due_date", err)
		return
	}

	lines, err := plan.CreatePlan(planReq, cal)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := toPlanDTO(planReq, lines)
	if h.Cache != nil {
		if body, err := json.Marshal(dto); err == nil {
			if err := h.Cache.Set(key, string(body)); err != nil {
				h.Log.WithError(err).Warn("preview cache write failed")
			}
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreatePlan computes a plan and persists it.
// POST /api/plans
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	planReq, err := req.toPlanRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid first_due_date", err)
		return
	}

	cal, err := h.holidayCalendar(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holiday calendar", err)
		return
	}

	lines, err := plan.CreatePlan(planReq, cal)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	cadence := planReq.Cadence
	if cadence == "" {
		cadence = plan.CadenceMonthly
	}
	rec := sqlite.PlanRecord{
		ID:               uuid.NewString(),
		NetAmountUnits:   planReq.NetAmount.MinorUnits(),
		InstallmentCount: planReq.InstallmentCount,
		FirstDueDate:     planReq.FirstDueDate,
		Cadence:          string(cadence),
		RecurrenceMonths: planReq.RecurrenceMonths,
		Lines:            sqlite.LinesFromPlan(lines),
	}
	if err := h.Store.SavePlan(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save plan", err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"plan_id":      rec.ID,
		"installments": rec.InstallmentCount,
		"net_amount":   planReq.NetAmount.String(),
	}).Info("plan created")

	dto := toPlanDTO(planReq, lines)
	dto.ID = rec.ID
	writeJSON(w, http.StatusCreated, dto)
}

// GetPlan returns a persisted plan.
// GET /api/plans/{id}
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, recordToPlanDTO(rec))
}

// ListPlans returns all persisted plans without lines.
// GET /api/plans
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListPlans(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list plans", err)
		return
	}

	dtos := make([]PlanDTO, len(records))
	for i := range records {
		dtos[i] = recordToPlanDTO(&records[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// DiscountPlan returns an early-payment discount view of a persisted plan.
// The stored plan is not modified: the discount is an offer presented to the
// payer, not a re-split.
// POST /api/plans/{id}/discount
func (h *Handler) DiscountPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DiscountRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get plan", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	discounted, err := plan.ApplyEarlyPaymentDiscount(recordToLines(rec), req.DiscountPercent, req.AffectedCount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	dto := recordToPlanDTO(rec)
	dto.Lines = toLineDTOs(discounted)
	writeJSON(w, http.StatusOK, dto)
}

// PayLine marks one installment line as paid.
// POST /api/plans/{id}/lines/{seq}/pay
func (h *Handler) PayLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if err != nil || seq < 1 {
		writeError(w, http.StatusBadRequest, "Invalid sequence number", err)
		return
	}

	if err := h.Store.MarkLinePaid(r.Context(), id, seq); err != nil {
		writeError(w, http.StatusNotFound, "Installment line not found", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plan_id": id, "sequence_no": seq, "paid": true})
}

// =============================================================================
// PRICING HANDLERS
// =============================================================================

// Scholarship computes a scholarship-netted plan. Not persisted; enrollment
// confirms it by calling CreatePlan with the netted amount.
// POST /api/scholarship
func (h *Handler) Scholarship(w http.ResponseWriter, r *http.Request) {
	var req ScholarshipRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	firstDue, err := calendar.Parse(req.FirstDueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid first_due_date", err)
		return
	}

	cal, err := h.holidayCalendar(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holiday calendar", err)
		return
	}

	lines, err := plan.DistributeScholarship(
		money.FromFloat(req.TotalAmount), money.FromFloat(req.ScholarshipAmount),
		req.InstallmentCount, firstDue, cal)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_amount":       req.TotalAmount,
		"scholarship_amount": req.ScholarshipAmount,
		"net_amount":         plan.Total(lines).Float64(),
		"lines":              toLineDTOs(lines),
	})
}

// UpfrontPrice quotes the discounted cash price of a total.
// POST /api/upfront-price
func (h *Handler) UpfrontPrice(w http.ResponseWriter, r *http.Request) {
	var req UpfrontPriceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	pct := plan.DefaultUpfrontDiscountPercent
	if req.DiscountPercent != nil {
		pct = *req.DiscountPercent
	}

	price, err := plan.CalculateUpfrontPrice(money.FromFloat(req.TotalAmount), pct)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UpfrontPriceDTO{
		TotalAmount:     req.TotalAmount,
		DiscountPercent: pct,
		UpfrontPrice:    price.Float64(),
	})
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the stored holiday calendar.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(records))
	for i, rec := range records {
		dtos[i] = HolidayDTO{ID: rec.ID, Date: rec.Date.String(), Name: rec.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds one holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	date, err := calendar.Parse(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	rec := sqlite.HolidayRecord{ID: uuid.NewString(), Date: date, Name: req.Name}
	if err := h.Store.SaveHoliday(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{ID: rec.ID, Date: rec.Date.String(), Name: rec.Name})
}

// ImportHolidays loads a JSON holiday bundle into the store.
// POST /api/holidays/import
func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	var cfg factory.CalendarJSON
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	set, err := factory.BuildCalendar(cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday bundle", err)
		return
	}

	for _, d := range set.Dates() {
		rec := sqlite.HolidayRecord{ID: uuid.NewString(), Date: d, Name: cfg.Name}
		if err := h.Store.SaveHoliday(r.Context(), rec); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
			return
		}
	}

	h.Log.WithFields(logrus.Fields{"bundle": cfg.Name, "holidays": set.Len()}).Info("holiday bundle imported")
	writeJSON(w, http.StatusCreated, map[string]any{"imported": set.Len()})
}

// DeleteHoliday removes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// =============================================================================
// HELPERS
// =============================================================================

// previewCacheKey hashes the request together with the calendar contents so
// a holiday update invalidates stale previews.
func previewCacheKey(req CreatePlanRequest, cal calendar.HolidayCalendar) string {
	hash := sha256.New()
	body, _ := json.Marshal(req)
	hash.Write(body)
	if set, ok := cal.(*calendar.HolidaySet); ok {
		for _, d := range set.Dates() {
			hash.Write([]byte(d.String()))
		}
	}
	return "plan-preview:" + hex.EncodeToString(hash.Sum(nil))
}

// writeEngineError maps engine validation failures to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrInvalidCount),
		errors.Is(err, money.ErrInsufficientAmount),
		errors.Is(err, plan.ErrInvalidRecurrence),
		errors.Is(err, plan.ErrInvalidDiscount):
		writeError(w, http.StatusBadRequest, "Invalid plan parameters", err)
	case errors.Is(err, calendar.ErrCalendarExhausted):
		writeError(w, http.StatusUnprocessableEntity, "Holiday calendar admits no business day", err)
	default:
		writeError(w, http.StatusInternalServerError, "Plan generation failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
