// internal/domain/payment/entity.go
package payment

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusCompleted PaymentStatus = "completed"
	StatusOverdue   PaymentStatus = "overdue"
	StatusCancelled PaymentStatus = "cancelled"
	StatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusOverdue, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

type PaymentType string

const (
	TypeLandPurchase       PaymentType = "land_purchase"
	TypeInvestmentSale     PaymentType = "investment_sale"
	TypeDocumentationLegal PaymentType = "documentation_legal"
	TypeMaintenanceTaxes   PaymentType = "maintenance_taxes"
	TypeOther              PaymentType = "other"
	TypeAdvance            PaymentType = "advance"
	TypePartial            PaymentType = "partial"
	TypeFinal              PaymentType = "final"
	TypeRegistration       PaymentType = "registration"
)

// PaymentTypes lists every type the backend accepts, in display order.
var PaymentTypes = []PaymentType{
	TypeLandPurchase,
	TypeInvestmentSale,
	TypeDocumentationLegal,
	TypeMaintenanceTaxes,
	TypeOther,
	TypeAdvance,
	TypePartial,
	TypeFinal,
	TypeRegistration,
}

func (t PaymentType) Valid() bool {
	for _, known := range PaymentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PaymentModes offered by the payment forms.
var PaymentModes = []string{"UPI", "NEFT", "RTGS", "IMPS", "Bank Transfer", "Cheque", "Cash", "Other"}

// Payment is one payment row for a deal. Dates are kept as the backend
// sends them and formatted for display on the way out.
type Payment struct {
	ID                int64         `json:"id"`
	DealID            int64         `json:"deal_id,omitempty"`
	Amount            float64       `json:"amount"`
	Currency          string        `json:"currency,omitempty"`
	PaymentDate       string        `json:"payment_date,omitempty"`
	DueDate           string        `json:"due_date,omitempty"`
	Description       string        `json:"description,omitempty"`
	PaymentType       PaymentType   `json:"payment_type,omitempty"`
	Status            PaymentStatus `json:"status,omitempty"`
	PaidBy            string        `json:"paid_by,omitempty"`
	PaidTo            string        `json:"paid_to,omitempty"`
	PaidByName        string        `json:"paid_by_name,omitempty"`
	PaidToName        string        `json:"paid_to_name,omitempty"`
	PaymentMode       string        `json:"payment_mode,omitempty"`
	Reference         string        `json:"reference,omitempty"`
	Notes             string        `json:"notes,omitempty"`
	Category          string        `json:"category,omitempty"`
	IsInstallment     bool          `json:"is_installment"`
	InstallmentNumber *int          `json:"installment_number,omitempty"`
	TotalInstallments *int          `json:"total_installments,omitempty"`
	ParentAmount      *float64      `json:"parent_amount,omitempty"`
}

// Proof is an uploaded payment proof file.
type Proof struct {
	ID         int64  `json:"id"`
	FileName   string `json:"file_name"`
	FileURL    string `json:"file_url"`
	UploadedAt string `json:"uploaded_at"`
}

// InstallmentRow is one sibling installment of a payment plan.
type InstallmentRow struct {
	ID                int64         `json:"id"`
	InstallmentNumber int           `json:"installment_number"`
	Amount            float64       `json:"amount"`
	PaymentDate       string        `json:"payment_date"`
	DueDate           string        `json:"due_date"`
	Status            PaymentStatus `json:"status"`
	PaymentMode       string        `json:"payment_mode"`
}

// InstallmentSet is the backend's answer for a payment's installment plan.
type InstallmentSet struct {
	ParentAmount      float64          `json:"parent_amount"`
	TotalInstallments int              `json:"total_installments"`
	Installments      []InstallmentRow `json:"installments"`
}
