// internal/domain/payment/dto.go
package payment

// CreatePaymentRequest records one payment against a deal.
type CreatePaymentRequest struct {
	Amount      float64       `json:"amount"`
	PaymentDate string        `json:"payment_date"`
	DueDate     string        `json:"due_date,omitempty"`
	Description string        `json:"description"`
	PaymentType PaymentType   `json:"payment_type,omitempty"`
	Status      PaymentStatus `json:"status,omitempty"`
	PaidBy      string        `json:"paid_by"`
	PaidTo      string        `json:"paid_to,omitempty"`
	PaymentMode string        `json:"payment_mode,omitempty"`
	Reference   string        `json:"reference"`
	Notes       string        `json:"notes,omitempty"`
	Category    string        `json:"category,omitempty"`
}

type CreatePaymentResponse struct {
	Message   string `json:"message"`
	PaymentID int64  `json:"payment_id"`
}

// UpdatePaymentRequest carries the editable fields of a payment. Nil
// pointers are left untouched by the backend.
type UpdatePaymentRequest struct {
	Amount      *float64       `json:"amount,omitempty"`
	PaymentDate *string        `json:"payment_date,omitempty"`
	DueDate     *string        `json:"due_date,omitempty"`
	Description *string        `json:"description,omitempty"`
	PaymentType *PaymentType   `json:"payment_type,omitempty"`
	Status      *PaymentStatus `json:"status,omitempty"`
	PaidBy      *string        `json:"paid_by,omitempty"`
	PaidTo      *string        `json:"paid_to,omitempty"`
	PaymentMode *string        `json:"payment_mode,omitempty"`
	Reference   *string        `json:"reference,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	Category    *string        `json:"category,omitempty"`
}

// Badge is the display label and tone for a status.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// PaymentView is a payment decorated for display.
type PaymentView struct {
	Payment
	AmountDisplay      string `json:"amount_display"`
	PaymentDateDisplay string `json:"payment_date_display"`
	DueDateDisplay     string `json:"due_date_display"`
	TypeLabel          string `json:"payment_type_label"`
	StatusBadge        Badge  `json:"status_badge"`
}

// PaymentDetail is everything the payment detail page shows at once.
type PaymentDetail struct {
	Payment      PaymentView      `json:"payment"`
	Proofs       []Proof          `json:"proofs"`
	Installments []InstallmentRow `json:"installments,omitempty"`
}

// PaymentListResponse for a deal's payments.
type PaymentListResponse struct {
	Payments     []PaymentView `json:"payments"`
	Total        int           `json:"total"`
	TotalAmount  float64       `json:"total_amount"`
	TotalDisplay string        `json:"total_display"`
}
