// internal/service/payment/payment_service.go
package payment

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"landdeals-console/internal/domain/payment"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/format"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is the slice of the backend API the payment pages use.
type Backend interface {
	ListPayments(ctx context.Context, token string, dealID int64) ([]payment.Payment, error)
	GetPayment(ctx context.Context, token string, dealID, paymentID int64) (*payment.Payment, error)
	CreatePayment(ctx context.Context, token string, dealID int64, req payment.CreatePaymentRequest) (int64, error)
	UpdatePayment(ctx context.Context, token string, dealID, paymentID int64, req payment.UpdatePaymentRequest) error
	DeletePayment(ctx context.Context, token string, dealID, paymentID int64) error
	Installments(ctx context.Context, token string, dealID, paymentID int64) (*payment.InstallmentSet, error)
	ListProofs(ctx context.Context, token string, dealID, paymentID int64) ([]payment.Proof, error)
	DeleteProof(ctx context.Context, token string, dealID, paymentID, proofID int64) error
	UploadProof(ctx context.Context, token string, dealID, paymentID int64, fileName string, file io.Reader) (*payment.Proof, error)
}

type PaymentService struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
}

func NewPaymentService(backend Backend, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Decorate adds the display fields to p.
func Decorate(p payment.Payment) payment.PaymentView {
	label, tone := format.StatusBadge(string(p.Status))
	return payment.PaymentView{
		Payment:            p,
		AmountDisplay:      format.INR(p.Amount),
		PaymentDateDisplay: format.DisplayDateString(p.PaymentDate),
		DueDateDisplay:     format.DisplayDateString(p.DueDate),
		TypeLabel:          format.PaymentTypeLabel(string(p.PaymentType)),
		StatusBadge:        payment.Badge{Label: label, Tone: tone},
	}
}

// List returns a deal's payments with a running total.
func (s *PaymentService) List(ctx context.Context, token string, dealID int64) (*payment.PaymentListResponse, error) {
	payments, err := s.backend.ListPayments(ctx, token, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	resp := &payment.PaymentListResponse{
		Payments: make([]payment.PaymentView, len(payments)),
		Total:    len(payments),
	}
	for i, p := range payments {
		resp.Payments[i] = Decorate(p)
		resp.TotalAmount += p.Amount
	}
	resp.TotalDisplay = format.INR(resp.TotalAmount)
	return resp, nil
}

// Get returns one payment decorated for display.
func (s *PaymentService) Get(ctx context.Context, token string, dealID, paymentID int64) (*payment.PaymentView, error) {
	p, err := s.backend.GetPayment(ctx, token, dealID, paymentID)
	if err != nil {
		return nil, err
	}
	view := Decorate(*p)
	return &view, nil
}

// Detail loads the payment, its proofs and, for installments, the sibling
// rows at the same time. Only the payment itself is required; missing
// proofs or installment rows leave those sections empty.
func (s *PaymentService) Detail(ctx context.Context, token string, dealID, paymentID int64) (*payment.PaymentDetail, error) {
	var (
		p      *payment.Payment
		proofs []payment.Proof
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.backend.GetPayment(gctx, token, dealID, paymentID)
		return err
	})
	g.Go(func() error {
		list, err := s.backend.ListProofs(gctx, token, dealID, paymentID)
		if err != nil {
			s.logger.Warn("failed to load payment proofs",
				zap.Int64("deal_id", dealID),
				zap.Int64("payment_id", paymentID),
				zap.Error(err))
			return nil
		}
		proofs = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if proofs == nil {
		proofs = []payment.Proof{}
	}
	detail := &payment.PaymentDetail{
		Payment: Decorate(*p),
		Proofs:  proofs,
	}

	if p.IsInstallment {
		set, err := s.backend.Installments(ctx, token, dealID, paymentID)
		if err != nil {
			s.logger.Warn("failed to load installment rows",
				zap.Int64("payment_id", paymentID),
				zap.Error(err))
		} else {
			detail.Installments = set.Installments
		}
	}

	return detail, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (s *PaymentService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateCreate checks a new payment before it is sent. Dates are compared
// as calendar days.
func ValidateCreate(req *payment.CreatePaymentRequest, today time.Time) error {
	fields := xerrors.FieldErrors{}

	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		fields.Add("amount", "Amount must be greater than 0")
	}

	var paid time.Time
	if req.PaymentDate == "" {
		fields.Add("payment_date", "Payment date is required")
	} else if d, ok := format.ParseDate(req.PaymentDate); !ok {
		fields.Add("payment_date", "Payment date is not a valid date")
	} else if d.After(today) {
		fields.Add("payment_date", "Payment date cannot be in the future")
	} else {
		paid = d
	}

	if req.DueDate != "" {
		d, ok := format.ParseDate(req.DueDate)
		switch {
		case !ok:
			fields.Add("due_date", "Due date is not a valid date")
		case !paid.IsZero() && d.Before(paid):
			fields.Add("due_date", "Due date cannot be before payment date")
		}
	}

	if req.Description == "" {
		fields.Add("description", "description is required")
	}
	if req.PaidBy == "" {
		fields.Add("paid_by", "paid by is required")
	}
	if req.Reference == "" {
		fields.Add("reference", "reference is required")
	}
	if req.PaymentType != "" && !req.PaymentType.Valid() {
		fields.Add("payment_type", "unknown payment type")
	}
	if req.Status != "" && !req.Status.Valid() {
		fields.Add("status", "unknown status")
	}

	return fields.OrNil()
}

// Create validates and records one payment, then returns it as stored.
func (s *PaymentService) Create(ctx context.Context, token string, dealID int64, req *payment.CreatePaymentRequest) (*payment.PaymentView, error) {
	req.Description = strings.TrimSpace(req.Description)
	req.PaidBy = strings.TrimSpace(req.PaidBy)
	req.PaidTo = strings.TrimSpace(req.PaidTo)
	req.Reference = strings.TrimSpace(req.Reference)
	req.Notes = strings.TrimSpace(req.Notes)
	req.PaymentDate = strings.TrimSpace(req.PaymentDate)
	req.DueDate = strings.TrimSpace(req.DueDate)

	if err := ValidateCreate(req, s.today()); err != nil {
		return nil, err
	}

	paymentID, err := s.backend.CreatePayment(ctx, token, dealID, *req)
	if err != nil {
		s.logger.Warn("failed to create payment",
			zap.Int64("deal_id", dealID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment created",
		zap.Int64("deal_id", dealID),
		zap.Int64("payment_id", paymentID),
		zap.Float64("amount", req.Amount))

	return s.Get(ctx, token, dealID, paymentID)
}

// ValidateUpdate checks an edit before it is sent. Dates are compared as
// calendar days.
func ValidateUpdate(req *payment.UpdatePaymentRequest, today time.Time) error {
	fields := xerrors.FieldErrors{}

	if req.Amount != nil && (*req.Amount <= 0 || math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0)) {
		fields.Add("amount", "Amount must be greater than 0")
	}

	var paid time.Time
	if req.PaymentDate != nil {
		d, ok := format.ParseDate(*req.PaymentDate)
		switch {
		case !ok:
			fields.Add("payment_date", "Payment date is not a valid date")
		case d.After(today):
			fields.Add("payment_date", "Payment date cannot be in the future")
		default:
			paid = d
		}
	}

	if req.DueDate != nil && *req.DueDate != "" {
		d, ok := format.ParseDate(*req.DueDate)
		switch {
		case !ok:
			fields.Add("due_date", "Due date is not a valid date")
		case !paid.IsZero() && d.Before(paid):
			fields.Add("due_date", "Due date cannot be before payment date")
		}
	}

	if req.Description != nil && *req.Description == "" {
		fields.Add("description", "description is required")
	}
	if req.PaidBy != nil && *req.PaidBy == "" {
		fields.Add("paid_by", "paid by is required")
	}
	if req.PaymentType != nil && !req.PaymentType.Valid() {
		fields.Add("payment_type", "unknown payment type")
	}
	if req.Status != nil && !req.Status.Valid() {
		fields.Add("status", "unknown status")
	}

	return fields.OrNil()
}

// Update validates and forwards an edit, then returns the fresh payment.
func (s *PaymentService) Update(ctx context.Context, token string, dealID, paymentID int64, req *payment.UpdatePaymentRequest) (*payment.PaymentView, error) {
	req.Description = trimPtr(req.Description)
	req.PaidBy = trimPtr(req.PaidBy)
	req.PaidTo = trimPtr(req.PaidTo)
	req.Reference = trimPtr(req.Reference)
	req.Notes = trimPtr(req.Notes)

	if err := ValidateUpdate(req, s.today()); err != nil {
		return nil, err
	}

	if err := s.backend.UpdatePayment(ctx, token, dealID, paymentID, *req); err != nil {
		s.logger.Warn("failed to update payment",
			zap.Int64("deal_id", dealID),
			zap.Int64("payment_id", paymentID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment updated",
		zap.Int64("deal_id", dealID),
		zap.Int64("payment_id", paymentID))

	return s.Get(ctx, token, dealID, paymentID)
}

func (s *PaymentService) Delete(ctx context.Context, token string, dealID, paymentID int64) error {
	if err := s.backend.DeletePayment(ctx, token, dealID, paymentID); err != nil {
		return err
	}
	s.logger.Info("payment deleted",
		zap.Int64("deal_id", dealID),
		zap.Int64("payment_id", paymentID))
	return nil
}

func (s *PaymentService) ListProofs(ctx context.Context, token string, dealID, paymentID int64) ([]payment.Proof, error) {
	proofs, err := s.backend.ListProofs(ctx, token, dealID, paymentID)
	if err != nil {
		return nil, err
	}
	if proofs == nil {
		proofs = []payment.Proof{}
	}
	return proofs, nil
}

func (s *PaymentService) DeleteProof(ctx context.Context, token string, dealID, paymentID, proofID int64) error {
	if err := s.backend.DeleteProof(ctx, token, dealID, paymentID, proofID); err != nil {
		return err
	}
	s.logger.Info("payment proof deleted",
		zap.Int64("payment_id", paymentID),
		zap.Int64("proof_id", proofID))
	return nil
}

// UploadProof streams file to the backend unchanged.
func (s *PaymentService) UploadProof(ctx context.Context, token string, dealID, paymentID int64, fileName string, file io.Reader) (*payment.Proof, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", xerrors.ErrInvalidInput)
	}
	proof, err := s.backend.UploadProof(ctx, token, dealID, paymentID, fileName, file)
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment proof uploaded",
		zap.Int64("payment_id", paymentID),
		zap.String("file", fileName))
	return proof, nil
}
