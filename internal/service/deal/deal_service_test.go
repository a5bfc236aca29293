package deal

import (
	"context"
	"testing"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/deal"
	xerrors "landdeals-console/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct{ d *deal.Deal }

func (f fakeBackend) GetDeal(context.Context, string, int64) (*deal.Deal, error) {
	if f.d == nil {
		return nil, xerrors.ErrNotFound
	}
	return f.d, nil
}

func TestGet(t *testing.T) {
	investor := int64(20)
	d := &deal.Deal{ID: 1, Investors: []deal.Party{{InvestorID: 20}}}
	svc := NewDealService(fakeBackend{d: d}, zap.NewNop())

	got, err := svc.Get(context.Background(), "tok", &auth.User{Role: auth.RoleAuditor}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.Get(context.Background(), "tok", &auth.User{Role: auth.RoleUser, InvestorID: &investor}, 1)
	assert.NoError(t, err)

	other := int64(21)
	_, err = svc.Get(context.Background(), "tok", &auth.User{Role: auth.RoleUser, InvestorID: &other}, 1)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	_, err = NewDealService(fakeBackend{}, zap.NewNop()).Get(context.Background(), "tok", &auth.User{Role: auth.RoleAdmin}, 2)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}
