// internal/domain/listview/dto.go
package listview

// OpenViewRequest opens a synchronized list view.
type OpenViewRequest struct {
	Resource  Resource  `json:"resource" binding:"required,oneof=owners investors"`
	SortBy    string    `json:"sort_by"`
	SortOrder SortOrder `json:"sort_order" binding:"omitempty,oneof=asc desc"`
	Flagged   bool      `json:"starred_only"`
}

type SearchRequest struct {
	Term string `json:"search"`
}

type SortRequest struct {
	SortBy    string    `json:"sort_by"`
	SortOrder SortOrder `json:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type FilterRequest struct {
	Flagged bool `json:"starred_only"`
}

type PageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}

// Snapshot is the view state sent to the browser after every change.
// Version increases with every snapshot of the same view; clients drop a
// snapshot whose version is lower than the last one they applied.
type Snapshot struct {
	Version       uint64       `json:"version"`
	ViewID        string       `json:"view_id"`
	Resource      Resource     `json:"resource"`
	Query         Query        `json:"query"`
	DisplayedTerm string       `json:"search_input"`
	Records       interface{}  `json:"records"`
	Pagination    Pagination   `json:"pagination"`
	Loading       LoadingState `json:"loading"`
	InFlight      []int64      `json:"toggling"`
	Error         string       `json:"error,omitempty"`
}
