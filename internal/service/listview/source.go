// internal/service/listview/source.go
package listview

import (
	"context"

	"landdeals-console/internal/domain/listview"
	"landdeals-console/internal/domain/owner"
)

// Backend is the part of the backend API the list views read and write.
type Backend interface {
	ListOwners(ctx context.Context, token string, q listview.Query) (*listview.Page[owner.Owner], error)
	StarOwner(ctx context.Context, token string, id int64, starred bool) error
	DeleteOwner(ctx context.Context, token string, id int64) error
	ListInvestors(ctx context.Context, token string, q listview.Query) (*listview.Page[owner.Investor], error)
	StarInvestor(ctx context.Context, token string, id int64, starred bool) error
	DeleteInvestor(ctx context.Context, token string, id int64) error
}

// ownerSource binds the owners endpoints to one session's token.
type ownerSource struct {
	backend Backend
	token   string
}

func (s ownerSource) Fetch(ctx context.Context, q listview.Query) (*listview.Page[owner.Owner], error) {
	return s.backend.ListOwners(ctx, s.token, q)
}

func (s ownerSource) SetFlag(ctx context.Context, id int64, flag bool) error {
	return s.backend.StarOwner(ctx, s.token, id, flag)
}

func (s ownerSource) Delete(ctx context.Context, id int64) error {
	return s.backend.DeleteOwner(ctx, s.token, id)
}

type investorSource struct {
	backend Backend
	token   string
}

func (s investorSource) Fetch(ctx context.Context, q listview.Query) (*listview.Page[owner.Investor], error) {
	return s.backend.ListInvestors(ctx, s.token, q)
}

func (s investorSource) SetFlag(ctx context.Context, id int64, flag bool) error {
	return s.backend.StarInvestor(ctx, s.token, id, flag)
}

func (s investorSource) Delete(ctx context.Context, id int64) error {
	return s.backend.DeleteInvestor(ctx, s.token, id)
}
