// internal/domain/installment/dto.go
package installment

// OverrideInput is a custom installment as typed into the form.
type OverrideInput struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// PlanRequest is the planner form as posted by the browser.
type PlanRequest struct {
	TotalAmount float64         `json:"total_amount"`
	Count       int             `json:"installment_count"`
	Frequency   Frequency       `json:"installment_frequency"`
	StartDate   string          `json:"installment_start_date"`
	DateMode    DateMode        `json:"installment_type"`
	Overrides   []OverrideInput `json:"custom_installments,omitempty"`
}

// SharedFields are copied onto every installment payment row.
type SharedFields struct {
	Description           string `json:"description"`
	PaymentType           string `json:"payment_type"`
	Status                string `json:"status"`
	PaidBy                string `json:"paid_by"`
	PaidTo                string `json:"paid_to"`
	PaymentMode           string `json:"payment_mode"`
	Reference             string `json:"reference"`
	Notes                 string `json:"notes"`
	Category              string `json:"category"`
	PayerBankName         string `json:"payer_bank_name"`
	PayerBankAccountNo    string `json:"payer_bank_account_no"`
	ReceiverBankName      string `json:"receiver_bank_name"`
	ReceiverBankAccountNo string `json:"receiver_bank_account_no"`
}

// SubmitPlanRequest is the planner form plus the shared payment fields.
type SubmitPlanRequest struct {
	Plan PlanRequest `json:"plan"`
	SharedFields
}

// PreviewRow is a preview entry decorated for display.
type PreviewRow struct {
	InstallmentNumber int     `json:"installment_number"`
	DueDate           string  `json:"due_date"`
	Amount            float64 `json:"amount"`
	AmountDisplay     string  `json:"amount_display"`
	DateDisplay       string  `json:"date_display"`
}

// PreviewResponse is returned for every planner recomputation.
type PreviewResponse struct {
	Count        int          `json:"installment_count"`
	TotalAmount  float64      `json:"total_amount"`
	PreviewTotal float64      `json:"preview_total"`
	TotalDisplay string       `json:"total_display"`
	MatchesTotal bool         `json:"matches_total"`
	Rows         []PreviewRow `json:"rows"`
	CountClamped bool         `json:"count_clamped"`
}

// InstallmentInput is one row of the backend's split-installments body.
type InstallmentInput struct {
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	DueDate     string  `json:"due_date"`
}

// SplitRequest is the body of POST /payments/:dealId/split-installments.
type SplitRequest struct {
	Installments []InstallmentInput `json:"installments"`
	SharedFields
}

// CreatedInstallment echoes one payment row the backend created.
type CreatedInstallment struct {
	PaymentID         int64   `json:"payment_id"`
	InstallmentNumber int     `json:"installment_number"`
	Amount            float64 `json:"amount"`
	PaymentDate       string  `json:"payment_date"`
}

// SplitResponse is the backend's answer to a split-installments call.
type SplitResponse struct {
	Message           string               `json:"message"`
	ParentAmount      float64              `json:"parent_amount"`
	TotalInstallments int                  `json:"total_installments"`
	Payments          []CreatedInstallment `json:"payments"`
}
