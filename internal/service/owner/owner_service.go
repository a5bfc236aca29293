// internal/service/owner/owner_service.go
package owner

import (
	"context"
	"strings"

	"landdeals-console/internal/domain/owner"
	xerrors "landdeals-console/internal/pkg/errors"

	"go.uber.org/zap"
)

type Backend interface {
	GetOwner(ctx context.Context, token string, id int64) (*owner.Owner, error)
	UpdateOwner(ctx context.Context, token string, id int64, req owner.UpdateOwnerRequest) (*owner.Owner, error)
}

type OwnerService struct {
	backend Backend
	logger  *zap.Logger
}

func NewOwnerService(backend Backend, logger *zap.Logger) *OwnerService {
	return &OwnerService{backend: backend, logger: logger}
}

func (s *OwnerService) Get(ctx context.Context, token string, id int64) (*owner.Owner, error) {
	return s.backend.GetOwner(ctx, token, id)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripSeparators(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "+", "").Replace(s)
}

// ValidateUpdate trims req in place and checks the identity fields. Empty
// optional fields are accepted.
func ValidateUpdate(req *owner.UpdateOwnerRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Email = strings.TrimSpace(req.Email)
	req.AadharCard = strings.TrimSpace(req.AadharCard)
	req.PanCard = strings.ToUpper(strings.TrimSpace(req.PanCard))
	req.Address = strings.TrimSpace(req.Address)

	fields := xerrors.FieldErrors{}
	if req.Name == "" {
		fields.Add("name", "name is required")
	}
	if req.Mobile != "" {
		if digits := stripSeparators(req.Mobile); !isDigits(digits) || len(digits) < 10 {
			fields.Add("mobile", "Mobile number must have at least 10 digits")
		}
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		fields.Add("email", "Email address is not valid")
	}
	if req.AadharCard != "" {
		if digits := stripSeparators(req.AadharCard); !isDigits(digits) || len(digits) != 12 {
			fields.Add("aadhar_card", "Aadhar number must have 12 digits")
		}
	}
	if req.PanCard != "" && !validPAN(req.PanCard) {
		fields.Add("pan_card", "PAN must look like ABCDE1234F")
	}
	return fields.OrNil()
}

// validPAN checks the five letters, four digits, one letter shape.
func validPAN(pan string) bool {
	if len(pan) != 10 {
		return false
	}
	for i, r := range pan {
		letter := r >= 'A' && r <= 'Z'
		digit := r >= '0' && r <= '9'
		if (i < 5 || i == 9) && !letter {
			return false
		}
		if i >= 5 && i < 9 && !digit {
			return false
		}
	}
	return true
}

func (s *OwnerService) Update(ctx context.Context, token string, id int64, req *owner.UpdateOwnerRequest) (*owner.Owner, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, err
	}

	updated, err := s.backend.UpdateOwner(ctx, token, id, *req)
	if err != nil {
		s.logger.Warn("failed to update owner", zap.Int64("owner_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("owner updated", zap.Int64("owner_id", id))
	return updated, nil
}
