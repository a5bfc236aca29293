package permission

import (
	"testing"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/deal"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestHasCapability(t *testing.T) {
	admin := &auth.User{Role: auth.RoleAdmin}
	auditor := &auth.User{Role: auth.RoleAuditor}
	user := &auth.User{Role: auth.RoleUser}

	for _, c := range All {
		assert.True(t, HasCapability(admin, c), "admin should have %s", c)
		assert.False(t, HasCapability(user, c), "user should not have %s", c)
	}

	assert.True(t, HasCapability(auditor, PaymentsEdit))
	assert.True(t, HasCapability(auditor, AdminAccess))
	assert.False(t, HasCapability(auditor, SystemAdmin))

	assert.False(t, HasCapability(nil, DealsView))
	assert.False(t, HasCapability(&auth.User{}, DealsView))
	assert.False(t, HasCapability(&auth.User{Role: "guest"}, DealsView))
}

func TestHasAnyAll(t *testing.T) {
	auditor := &auth.User{Role: auth.RoleAuditor}

	assert.True(t, HasAny(auditor, SystemAdmin, OwnersView))
	assert.False(t, HasAll(auditor, SystemAdmin, OwnersView))
	assert.True(t, HasAll(auditor, OwnersView, OwnersDelete))
	assert.False(t, HasAny(auditor))
	assert.True(t, HasAll(auditor))
}

func TestCanPerform(t *testing.T) {
	admin := &auth.User{Role: auth.RoleAdmin}
	assert.True(t, CanPerform(admin, "delete", "owners"))
	assert.True(t, CanPerform(admin, "Edit", "Payments"))
	assert.False(t, CanPerform(admin, "fly", "owners"))
}

func TestForRole(t *testing.T) {
	assert.Len(t, ForRole(auth.RoleAdmin), len(All))
	assert.Len(t, ForRole(auth.RoleAuditor), len(All)-1)
	assert.Empty(t, ForRole(auth.RoleUser))
	assert.Empty(t, ForRole("nobody"))
	assert.Equal(t, "deals:view", Strings(auth.RoleAdmin)[0])
}

func TestCanAccessDeal(t *testing.T) {
	d := &deal.Deal{Investors: []deal.Party{{ID: 10}, {InvestorID: 20}}}

	assert.True(t, CanAccessDeal(&auth.User{Role: auth.RoleAuditor}, d))
	assert.True(t, CanAccessDeal(&auth.User{Role: auth.RoleUser, InvestorID: int64Ptr(20)}, d))
	assert.False(t, CanAccessDeal(&auth.User{Role: auth.RoleUser, InvestorID: int64Ptr(30)}, d))
	assert.False(t, CanAccessDeal(&auth.User{Role: auth.RoleUser}, d))
	assert.False(t, CanAccessDeal(nil, d))
	assert.False(t, CanAccessDeal(&auth.User{Role: auth.RoleAdmin}, nil))
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, "Administrator", RoleName(auth.RoleAdmin))
	assert.Equal(t, "Unknown", RoleName("x"))
	assert.Contains(t, RoleDescription(auth.RoleUser), "Restricted")
}
