// internal/domain/listview/entity.go
package listview

import "encoding/json"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// Resource names a list the console can synchronize.
type Resource string

const (
	ResourceOwners    Resource = "owners"
	ResourceInvestors Resource = "investors"
)

// LoadingState distinguishes the first full-page load from later
// interactions that only overlay the existing list.
type LoadingState string

const (
	LoadingIdle    LoadingState = "idle"
	LoadingInitial LoadingState = "initial"
	LoadingOverlay LoadingState = "overlay"
)

// Query is the list's query state. Page is 1-based.
type Query struct {
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
	SortBy    string    `json:"sort_by"`
	SortOrder SortOrder `json:"sort_order"`
	Search    string    `json:"search"`
	Flagged   bool      `json:"starred_only"`
}

// Pagination is the server's pagination metadata.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// UnmarshalJSON accepts both "pages" and "total_pages" for the page count;
// the owners and investors endpoints disagree on the name.
func (p *Pagination) UnmarshalJSON(data []byte) error {
	var raw struct {
		Page       int  `json:"page"`
		Limit      int  `json:"limit"`
		Pages      *int `json:"pages"`
		TotalPages *int `json:"total_pages"`
		Total      int  `json:"total"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Pagination{Page: raw.Page, Limit: raw.Limit, Total: raw.Total}
	switch {
	case raw.Pages != nil:
		p.Pages = *raw.Pages
	case raw.TotalPages != nil:
		p.Pages = *raw.TotalPages
	}
	return nil
}

// EmptyPagination is what a view shows after a failed fetch.
func EmptyPagination(limit int) Pagination {
	return Pagination{Page: 1, Limit: limit, Pages: 1, Total: 0}
}

// Page is one page of records plus its metadata, as the backend returns it.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
