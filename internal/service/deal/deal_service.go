// internal/service/deal/deal_service.go
package deal

import (
	"context"
	"fmt"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/deal"
	xerrors "landdeals-console/internal/pkg/errors"
	"landdeals-console/internal/pkg/permission"

	"go.uber.org/zap"
)

type Backend interface {
	GetDeal(ctx context.Context, token string, dealID int64) (*deal.Deal, error)
}

type DealService struct {
	backend Backend
	logger  *zap.Logger
}

func NewDealService(backend Backend, logger *zap.Logger) *DealService {
	return &DealService{backend: backend, logger: logger}
}

// Get loads a deal and hides it from users who may not see it.
func (s *DealService) Get(ctx context.Context, token string, user *auth.User, dealID int64) (*deal.Deal, error) {
	d, err := s.backend.GetDeal(ctx, token, dealID)
	if err != nil {
		return nil, err
	}

	if !permission.CanAccessDeal(user, d) {
		s.logger.Info("deal access denied",
			zap.Int64("deal_id", dealID),
			zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%w: you do not have access to this deal", xerrors.ErrForbidden)
	}
	return d, nil
}
