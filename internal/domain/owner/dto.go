// internal/domain/owner/dto.go
package owner

// Sort columns the backend accepts for each list.
var (
	OwnerSortFields    = []string{"name", "mobile", "aadhar_card", "pan_card", "id"}
	InvestorSortFields = []string{"investor_name", "mobile", "aadhar_card", "pan_card", "id", "investment_amount", "investment_percentage"}
)

// UpdateOwnerRequest for PUT /owners/:id.
type UpdateOwnerRequest struct {
	Name       string `json:"name" binding:"required"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email"`
	AadharCard string `json:"aadhar_card"`
	PanCard    string `json:"pan_card"`
	Address    string `json:"address"`
}

// StarRequest is the body of POST /owners/:id/star and /investors/:id/star.
type StarRequest struct {
	Starred bool `json:"starred"`
}
