package owner

import (
	"context"
	"errors"
	"testing"

	"landdeals-console/internal/domain/owner"
	xerrors "landdeals-console/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	sent []owner.UpdateOwnerRequest
}

func (f *fakeBackend) GetOwner(_ context.Context, _ string, id int64) (*owner.Owner, error) {
	return &owner.Owner{ID: id, Name: "Ramesh"}, nil
}

func (f *fakeBackend) UpdateOwner(_ context.Context, _ string, id int64, req owner.UpdateOwnerRequest) (*owner.Owner, error) {
	f.sent = append(f.sent, req)
	return &owner.Owner{ID: id, Name: req.Name}, nil
}

func TestValidateUpdate(t *testing.T) {
	req := &owner.UpdateOwnerRequest{
		Name:       "  Ramesh Patil ",
		Mobile:     "+91-9876543210",
		AadharCard: "1234 5678 9012",
		PanCard:    "abcde1234f",
	}
	require.NoError(t, ValidateUpdate(req))
	assert.Equal(t, "Ramesh Patil", req.Name)
	assert.Equal(t, "ABCDE1234F", req.PanCard)

	bad := &owner.UpdateOwnerRequest{
		Name:       " ",
		Mobile:     "12345",
		Email:      "nope",
		AadharCard: "1234",
		PanCard:    "12345ABCDE",
	}
	err := ValidateUpdate(bad)
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)

	var fields xerrors.FieldErrors
	require.True(t, errors.As(err, &fields))
	for _, f := range []string{"name", "mobile", "email", "aadhar_card", "pan_card"} {
		assert.Contains(t, fields, f)
	}
}

func TestUpdate(t *testing.T) {
	b := &fakeBackend{}
	svc := NewOwnerService(b, zap.NewNop())

	got, err := svc.Update(context.Background(), "tok", 4, &owner.UpdateOwnerRequest{Name: " Sita "})
	require.NoError(t, err)
	assert.Equal(t, "Sita", got.Name)
	require.Len(t, b.sent, 1)

	_, err = svc.Update(context.Background(), "tok", 4, &owner.UpdateOwnerRequest{})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Len(t, b.sent, 1)
}
