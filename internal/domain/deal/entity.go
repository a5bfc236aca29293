// internal/domain/deal/entity.go
package deal

// Party is an owner, buyer or investor attached to a deal. The backend
// reports investor links under either id or investor_id.
type Party struct {
	ID                 int64   `json:"id"`
	InvestorID         int64   `json:"investor_id,omitempty"`
	OwnerID            int64   `json:"owner_id,omitempty"`
	Name               string  `json:"name,omitempty"`
	InvestorName       string  `json:"investor_name,omitempty"`
	Mobile             string  `json:"mobile,omitempty"`
	Email              string  `json:"email,omitempty"`
	PercentageShare    float64 `json:"percentage_share,omitempty"`
	InvestmentAmount   float64 `json:"investment_amount,omitempty"`
	CalculatedInvested float64 `json:"calculated_investment_amount,omitempty"`
}

// DisplayName prefers the party's own name, falling back to investor_name.
func (p Party) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.InvestorName
}

// Document is a file attached to a deal.
type Document struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name,omitempty"`
	FilePath string `json:"file_path,omitempty"`
	DocType  string `json:"doc_type,omitempty"`
}

// Deal is the canonical deal shape used throughout the console.
type Deal struct {
	ID             int64      `json:"id"`
	ProjectName    string     `json:"project_name"`
	Status         string     `json:"status"`
	State          string     `json:"state,omitempty"`
	District       string     `json:"district,omitempty"`
	Taluka         string     `json:"taluka,omitempty"`
	Village        string     `json:"village,omitempty"`
	PurchaseAmount float64    `json:"purchase_amount,omitempty"`
	SellingAmount  float64    `json:"selling_amount,omitempty"`
	Owners         []Party    `json:"owners"`
	Buyers         []Party    `json:"buyers"`
	Investors      []Party    `json:"investors"`
	Documents      []Document `json:"documents"`
}

// HasInvestor reports whether investorID is linked to the deal.
func (d *Deal) HasInvestor(investorID int64) bool {
	for _, inv := range d.Investors {
		if inv.ID == investorID || inv.InvestorID == investorID {
			return true
		}
	}
	return false
}
