/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: amounts cross
  the boundary as decimal numbers, dates as YYYY-MM-DD strings, and the
  engine's minor-unit representation stays internal.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request structs carry validator/v10 tags; handlers run the shared
  Validate instance before touching the engine, so malformed input fails
  with a 400 and a field-level message.

SEE ALSO:
  - handlers.go: Uses these types
  - plan: the engine types these mirror
*/
package api

import (
	"github.com/warp/installment-engine/calendar"
	"github.com/warp/installment-engine/money"
	"github.com/warp/installment-engine/plan"
	"github.com/warp/installment-engine/store/sqlite"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreatePlanRequest asks for an installment plan.
type CreatePlanRequest struct {
	NetAmount        float64 `json:"net_amount" validate:"required,gt=0"`
	InstallmentCount int     `json:"installment_count" validate:"required,gte=1"`
	FirstDueDate     string  `json:"first_due_date" validate:"required,datetime=2006-01-02"`
	Cadence          string  `json:"cadence,omitempty" validate:"omitempty,oneof=monthly spread"`
	RecurrenceMonths int     `json:"recurrence_months,omitempty" validate:"omitempty,gte=1"`
}

// toPlanRequest converts the DTO into an engine request. Defaults match the
// engine: empty cadence means monthly, monthly defaults to every month.
func (r CreatePlanRequest) toPlanRequest() (plan.PlanRequest, error) {
	firstDue, err := calendar.Parse(r.FirstDueDate)
	if err != nil {
		return plan.PlanRequest{}, err
	}
	months := r.RecurrenceMonths
	if months == 0 && plan.Cadence(r.Cadence) != plan.CadenceSpread {
		months = 1
	}
	return plan.PlanRequest{
		NetAmount:        money.FromFloat(r.NetAmount),
		InstallmentCount: r.InstallmentCount,
		FirstDueDate:     firstDue,
		Cadence:          plan.Cadence(r.Cadence),
		RecurrenceMonths: months,
	}, nil
}

// ScholarshipRequest asks for a scholarship-netted plan.
type ScholarshipRequest struct {
	TotalAmount       float64 `json:"total_amount" validate:"required,gt=0"`
	ScholarshipAmount float64 `json:"scholarship_amount" validate:"gte=0"`
	InstallmentCount  int     `json:"installment_count" validate:"required,gte=1"`
	FirstDueDate      string  `json:"first_due_date" validate:"required,datetime=2006-01-02"`
}

// DiscountRequest applies an early-payment discount to a stored plan.
type DiscountRequest struct {
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	AffectedCount   int     `json:"affected_count" validate:"gte=0"`
}

// UpfrontPriceRequest asks for the cash price of a total.
type UpfrontPriceRequest struct {
	TotalAmount     float64  `json:"total_amount" validate:"required,gt=0"`
	DiscountPercent *float64 `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// CreateHolidayRequest adds a holiday to the stored calendar.
type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Name string `json:"name,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// InstallmentLineDTO is one scheduled payment in API responses.
type InstallmentLineDTO struct {
	SequenceNo int     `json:"sequence_no"`
	Amount     float64 `json:"amount"`
	DueDate    string  `json:"due_date"`
	Paid       bool    `json:"paid,omitempty"`
	Overdue    bool    `json:"overdue,omitempty"`
}

// PlanDTO is a generated (and possibly persisted) plan.
type PlanDTO struct {
	ID               string               `json:"id,omitempty"`
	NetAmount        float64              `json:"net_amount"`
	InstallmentCount int                  `json:"installment_count"`
	FirstDueDate     string               `json:"first_due_date"`
	Cadence          string               `json:"cadence"`
	RecurrenceMonths int                  `json:"recurrence_months,omitempty"`
	CreatedAt        string               `json:"created_at,omitempty"`
	Lines            []InstallmentLineDTO `json:"lines"`
}

// UpfrontPriceDTO is a cash price quote.
type UpfrontPriceDTO struct {
	TotalAmount     float64 `json:"total_amount"`
	DiscountPercent float64 `json:"discount_percent"`
	UpfrontPrice    float64 `json:"upfront_price"`
}

// HolidayDTO is a stored holiday.
type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

// ErrorResponse is the JSON shape of every error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toLineDTOs(lines []plan.InstallmentLine) []InstallmentLineDTO {
	dtos := make([]InstallmentLineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = InstallmentLineDTO{
			SequenceNo: l.SequenceNo,
			Amount:     l.Amount.Float64(),
			DueDate:    l.DueDate.String(),
		}
	}
	return dtos
}

func toPlanDTO(req plan.PlanRequest, lines []plan.InstallmentLine) PlanDTO {
	cadence := req.Cadence
	if cadence == "" {
		cadence = plan.CadenceMonthly
	}
	return PlanDTO{
		NetAmount:        req.NetAmount.Float64(),
		InstallmentCount: req.InstallmentCount,
		FirstDueDate:     req.FirstDueDate.String(),
		Cadence:          string(cadence),
		RecurrenceMonths: req.RecurrenceMonths,
		Lines:            toLineDTOs(lines),
	}
}

func recordToPlanDTO(rec *sqlite.PlanRecord) PlanDTO {
	dto := PlanDTO{
		ID:               rec.ID,
		NetAmount:        money.FromMinorUnits(rec.NetAmountUnits).Float64(),
		InstallmentCount: rec.InstallmentCount,
		FirstDueDate:     rec.FirstDueDate.String(),
		Cadence:          rec.Cadence,
		RecurrenceMonths: rec.RecurrenceMonths,
		CreatedAt:        rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Lines:            make([]InstallmentLineDTO, len(rec.Lines)),
	}
	for i, l := range rec.Lines {
		dto.Lines[i] = InstallmentLineDTO{
			SequenceNo: l.SequenceNo,
			Amount:     money.FromMinorUnits(l.AmountUnits).Float64(),
			DueDate:    l.DueDate.String(),
			Paid:       l.Paid,
			Overdue:    l.Overdue,
		}
	}
	return dto
}

// recordToLines rebuilds engine lines from a stored plan for re-adjustment.
func recordToLines(rec *sqlite.PlanRecord) []plan.InstallmentLine {
	lines := make([]plan.InstallmentLine, len(rec.Lines))
	for i, l := range rec.Lines {
		lines[i] = plan.InstallmentLine{
			SequenceNo: l.SequenceNo,
			Amount:     money.FromMinorUnits(l.AmountUnits),
			DueDate:    l.DueDate,
		}
	}
	return lines
}
