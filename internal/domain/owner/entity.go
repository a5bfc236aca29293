// internal/domain/owner/entity.go
package owner

// Owner is a land owner row as returned by GET /owners.
type Owner struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Mobile          string  `json:"mobile,omitempty"`
	Email           string  `json:"email,omitempty"`
	AadharCard      string  `json:"aadhar_card,omitempty"`
	PanCard         string  `json:"pan_card,omitempty"`
	Address         string  `json:"address,omitempty"`
	IsStarred       bool    `json:"is_starred"`
	TotalProjects   int     `json:"total_projects"`
	ActiveProjects  int     `json:"active_projects"`
	TotalInvestment float64 `json:"total_investment"`
}

func (o Owner) RecordID() int64 { return o.ID }
func (o Owner) Flagged() bool   { return o.IsStarred }

func (o Owner) WithFlag(flag bool) Owner {
	o.IsStarred = flag
	return o
}

// Investor is an investor row as returned by GET /investors.
type Investor struct {
	ID                   int64   `json:"id"`
	InvestorName         string  `json:"investor_name"`
	Mobile               string  `json:"mobile,omitempty"`
	Email                string  `json:"email,omitempty"`
	AadharCard           string  `json:"aadhar_card,omitempty"`
	PanCard              string  `json:"pan_card,omitempty"`
	InvestmentAmount     float64 `json:"investment_amount"`
	InvestmentPercentage float64 `json:"investment_percentage"`
	IsStarred            bool    `json:"is_starred"`
	TotalProjects        int     `json:"total_projects"`
}

func (i Investor) RecordID() int64 { return i.ID }
func (i Investor) Flagged() bool   { return i.IsStarred }

func (i Investor) WithFlag(flag bool) Investor {
	i.IsStarred = flag
	return i
}
