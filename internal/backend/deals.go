// internal/backend/deals.go
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"landdeals-console/internal/domain/deal"
	xerrors "landdeals-console/internal/pkg/errors"
)

// GetDeal fetches a deal and normalizes whichever shape the backend sent.
func (c *Client) GetDeal(ctx context.Context, token string, dealID int64) (*deal.Deal, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, token, http.MethodGet, fmt.Sprintf("/deals/%d", dealID), nil, nil, &raw); err != nil {
		return nil, err
	}

	d, err := deal.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUpstream, err)
	}
	return d, nil
}
