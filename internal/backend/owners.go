// internal/backend/owners.go
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"landdeals-console/internal/domain/listview"
	"landdeals-console/internal/domain/owner"
)

// listQuery renders a list query the way the paginated endpoints expect it.
func listQuery(q listview.Query) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", string(q.SortOrder))
	}
	v.Set("starred_only", strconv.FormatBool(q.Flagged))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (c *Client) ListOwners(ctx context.Context, token string, q listview.Query) (*listview.Page[owner.Owner], error) {
	var out listview.Page[owner.Owner]
	if err := c.doJSON(ctx, token, http.MethodGet, "/owners", listQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOwner(ctx context.Context, token string, id int64) (*owner.Owner, error) {
	var out owner.Owner
	if err := c.doJSON(ctx, token, http.MethodGet, fmt.Sprintf("/owners/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOwner(ctx context.Context, token string, id int64, req owner.UpdateOwnerRequest) (*owner.Owner, error) {
	var out owner.Owner
	if err := c.doJSON(ctx, token, http.MethodPut, fmt.Sprintf("/owners/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StarOwner(ctx context.Context, token string, id int64, starred bool) error {
	return c.doJSON(ctx, token, http.MethodPost, fmt.Sprintf("/owners/%d/star", id), nil, owner.StarRequest{Starred: starred}, nil)
}

func (c *Client) DeleteOwner(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, token, http.MethodDelete, fmt.Sprintf("/owners/%d", id), nil, nil, nil)
}

func (c *Client) ListInvestors(ctx context.Context, token string, q listview.Query) (*listview.Page[owner.Investor], error) {
	var out listview.Page[owner.Investor]
	if err := c.doJSON(ctx, token, http.MethodGet, "/investors", listQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StarInvestor(ctx context.Context, token string, id int64, starred bool) error {
	return c.doJSON(ctx, token, http.MethodPost, fmt.Sprintf("/investors/%d/star", id), nil, owner.StarRequest{Starred: starred}, nil)
}

func (c *Client) DeleteInvestor(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, token, http.MethodDelete, fmt.Sprintf("/investors/%d", id), nil, nil, nil)
}
