// internal/service/installment/installment_service.go
package installment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"landdeals-console/internal/domain/installment"
	"landdeals-console/internal/domain/payment"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/format"

	"go.uber.org/zap"
)

// Splitter persists a batch of installments as payments.
type Splitter interface {
	SplitInstallments(ctx context.Context, token string, dealID int64, req installment.SplitRequest) (*installment.SplitResponse, error)
}

type InstallmentService struct {
	backend Splitter
	logger  *zap.Logger
	now     func() time.Time
}

func NewInstallmentService(backend Splitter, logger *zap.Logger) *InstallmentService {
	return &InstallmentService{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// ParsePlan replays the posted form onto a PlanForm so the same clamping
// and seeding rules apply as when the form is edited field by field. The
// returned flag is true when the count had to be clamped.
func (s *InstallmentService) ParsePlan(req *installment.PlanRequest) (*PlanForm, bool, error) {
	fields := xerrors.FieldErrors{}

	if req.TotalAmount <= 0 || math.IsNaN(req.TotalAmount) || math.IsInf(req.TotalAmount, 0) {
		fields.Add("total_amount", "Amount must be greater than 0")
	}

	start, ok := format.ParseDate(req.StartDate)
	if !ok {
		if strings.TrimSpace(req.StartDate) == "" {
			fields.Add("installment_start_date", "First installment date is required")
		} else {
			fields.Add("installment_start_date", "First installment date is not a valid date")
		}
	}

	slots := make([]installment.Slot, len(req.Overrides))
	for i, o := range req.Overrides {
		slots[i].Amount = o.Amount
		if strings.TrimSpace(o.Date) == "" {
			continue
		}
		d, ok := format.ParseDate(o.Date)
		if !ok {
			fields.Add(fmt.Sprintf("custom_installments.%d.date", i), "Not a valid date")
			continue
		}
		slots[i].Date = d
	}

	if err := fields.OrNil(); err != nil {
		return nil, false, err
	}

	frequency := req.Frequency
	if !frequency.Valid() {
		frequency = installment.FrequencyMonthly
	}

	form := NewPlanForm(s.now)
	form.SetTotalAmount(req.TotalAmount)
	form.SetFrequency(frequency)
	form.SetStartDate(start)
	form.SetEnabled(true)
	form.SetCount(req.Count)
	form.SetMode(req.DateMode)

	for i, slot := range slots {
		if i >= form.Count {
			break
		}
		form.SetOverride(i, slot)
	}

	_, clamped := ClampCount(req.Count)
	return form, clamped, nil
}

// Preview recomputes the installment rows for req.
func (s *InstallmentService) Preview(req *installment.PlanRequest) (*installment.PreviewResponse, error) {
	form, clamped, err := s.ParsePlan(req)
	if err != nil {
		return nil, err
	}

	entries := form.Preview()
	total := SumAmounts(entries)

	rows := make([]installment.PreviewRow, len(entries))
	for i, e := range entries {
		rows[i] = installment.PreviewRow{
			InstallmentNumber: e.Number,
			DueDate:           format.ISODate(e.DueDate),
			Amount:            e.Amount,
			AmountDisplay:     format.INR(e.Amount),
			DateDisplay:       format.DisplayDate(e.DueDate),
		}
	}

	return &installment.PreviewResponse{
		Count:        form.Count,
		TotalAmount:  form.TotalAmount,
		PreviewTotal: total,
		TotalDisplay: format.INR(total),
		MatchesTotal: math.Abs(total-form.TotalAmount) < 0.005,
		Rows:         rows,
		CountClamped: clamped,
	}, nil
}

func validateShared(shared *installment.SharedFields) error {
	fields := xerrors.FieldErrors{}

	if shared.Description == "" {
		fields.Add("description", "description is required")
	}
	if shared.PaidBy == "" {
		fields.Add("paid_by", "paid by is required")
	}
	if shared.Reference == "" {
		fields.Add("reference", "reference is required")
	}
	if shared.PaymentType != "" && !payment.PaymentType(shared.PaymentType).Valid() {
		fields.Add("payment_type", "unknown payment type")
	}

	return fields.OrNil()
}

func trimShared(shared installment.SharedFields) installment.SharedFields {
	shared.Description = strings.TrimSpace(shared.Description)
	shared.PaidBy = strings.TrimSpace(shared.PaidBy)
	shared.PaidTo = strings.TrimSpace(shared.PaidTo)
	shared.Reference = strings.TrimSpace(shared.Reference)
	shared.Notes = strings.TrimSpace(shared.Notes)
	shared.Category = strings.TrimSpace(shared.Category)
	shared.PayerBankName = strings.TrimSpace(shared.PayerBankName)
	shared.PayerBankAccountNo = strings.TrimSpace(shared.PayerBankAccountNo)
	shared.ReceiverBankName = strings.TrimSpace(shared.ReceiverBankName)
	shared.ReceiverBankAccountNo = strings.TrimSpace(shared.ReceiverBankAccountNo)
	return shared
}

// Submit validates the plan and creates all installments with one backend
// call. Installments always start out pending.
func (s *InstallmentService) Submit(ctx context.Context, token string, dealID int64, req *installment.SubmitPlanRequest) (*installment.SplitResponse, error) {
	shared := trimShared(req.SharedFields)

	form, _, planErr := s.ParsePlan(&req.Plan)
	sharedErr := validateShared(&shared)
	if planErr != nil || sharedErr != nil {
		return nil, mergeFieldErrors(planErr, sharedErr)
	}

	entries := form.Preview()
	split := installment.SplitRequest{
		Installments: make([]installment.InstallmentInput, len(entries)),
		SharedFields: shared,
	}
	split.Status = string(payment.StatusPending)
	for i, e := range entries {
		date := format.ISODate(e.DueDate)
		split.Installments[i] = installment.InstallmentInput{
			Amount:      e.Amount,
			PaymentDate: date,
			DueDate:     date,
		}
	}

	resp, err := s.backend.SplitInstallments(ctx, token, dealID, split)
	if err != nil {
		s.logger.Warn("failed to create installments",
			zap.Int64("deal_id", dealID),
			zap.Int("count", len(entries)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("installments created",
		zap.Int64("deal_id", dealID),
		zap.Int("count", resp.TotalInstallments),
		zap.Float64("parent_amount", resp.ParentAmount))

	return resp, nil
}

// mergeFieldErrors folds several validation results into one FieldErrors.
func mergeFieldErrors(errs ...error) error {
	merged := xerrors.FieldErrors{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		fe, ok := err.(xerrors.FieldErrors)
		if !ok {
			return err
		}
		for k, v := range fe {
			merged.Add(k, v)
		}
	}
	return merged.OrNil()
}
