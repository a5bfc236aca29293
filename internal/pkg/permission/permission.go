// Package permission answers "may this user do that" against the static
// role table. It is a convenience for hiding actions early; the backend
// re-checks every request.
package permission

import (
	"strings"

	"landdeals-console/internal/domain/auth"
	"landdeals-console/internal/domain/deal"
)

type Capability string

const (
	DealsView   Capability = "deals:view"
	DealsCreate Capability = "deals:create"
	DealsEdit   Capability = "deals:edit"
	DealsDelete Capability = "deals:delete"

	UsersView   Capability = "users:view"
	UsersCreate Capability = "users:create"
	UsersEdit   Capability = "users:edit"
	UsersDelete Capability = "users:delete"

	OwnersView   Capability = "owners:view"
	OwnersCreate Capability = "owners:create"
	OwnersEdit   Capability = "owners:edit"
	OwnersDelete Capability = "owners:delete"

	InvestorsView   Capability = "investors:view"
	InvestorsCreate Capability = "investors:create"
	InvestorsEdit   Capability = "investors:edit"
	InvestorsDelete Capability = "investors:delete"

	PaymentsView   Capability = "payments:view"
	PaymentsCreate Capability = "payments:create"
	PaymentsEdit   Capability = "payments:edit"
	PaymentsDelete Capability = "payments:delete"

	DocumentsView   Capability = "documents:view"
	DocumentsUpload Capability = "documents:upload"
	DocumentsDelete Capability = "documents:delete"

	FinancialsView Capability = "financials:view"
	FinancialsEdit Capability = "financials:edit"

	SystemAdmin     Capability = "system:admin"
	ReportsGenerate Capability = "reports:generate"
	AdminAccess     Capability = "admin:access"
)

// All lists every capability in table order.
var All = []Capability{
	DealsView, DealsCreate, DealsEdit, DealsDelete,
	UsersView, UsersCreate, UsersEdit, UsersDelete,
	OwnersView, OwnersCreate, OwnersEdit, OwnersDelete,
	InvestorsView, InvestorsCreate, InvestorsEdit, InvestorsDelete,
	PaymentsView, PaymentsCreate, PaymentsEdit, PaymentsDelete,
	DocumentsView, DocumentsUpload, DocumentsDelete,
	FinancialsView, FinancialsEdit,
	SystemAdmin, ReportsGenerate, AdminAccess,
}

var roleCapabilities = buildRoleTable()

func buildRoleTable() map[string]map[Capability]bool {
	admin := make(map[Capability]bool, len(All))
	auditor := make(map[Capability]bool, len(All))
	for _, c := range All {
		admin[c] = true
		// Auditors get everything except system administration.
		if c != SystemAdmin {
			auditor[c] = true
		}
	}

	return map[string]map[Capability]bool{
		auth.RoleAdmin:   admin,
		auth.RoleAuditor: auditor,
		auth.RoleUser:    {},
	}
}

// HasCapability reports whether user's role grants c.
func HasCapability(user *auth.User, c Capability) bool {
	if user == nil || user.Role == "" {
		return false
	}
	return roleCapabilities[user.Role][c]
}

// HasAny reports whether user has at least one of caps.
func HasAny(user *auth.User, caps ...Capability) bool {
	for _, c := range caps {
		if HasCapability(user, c) {
			return true
		}
	}
	return false
}

// HasAll reports whether user has every one of caps.
func HasAll(user *auth.User, caps ...Capability) bool {
	for _, c := range caps {
		if !HasCapability(user, c) {
			return false
		}
	}
	return true
}

// CanPerform checks the "<resource>:<action>" capability.
func CanPerform(user *auth.User, action, resource string) bool {
	return HasCapability(user, Capability(strings.ToLower(resource)+":"+strings.ToLower(action)))
}

// ForRole returns the capabilities of role in table order.
func ForRole(role string) []Capability {
	granted := roleCapabilities[role]
	out := make([]Capability, 0, len(granted))
	for _, c := range All {
		if granted[c] {
			out = append(out, c)
		}
	}
	return out
}

// Strings is ForRole as plain strings, for JSON responses.
func Strings(role string) []string {
	caps := ForRole(role)
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}

// HasRestrictedAccess is true for plain users tied to an investor.
func HasRestrictedAccess(user *auth.User) bool {
	return user != nil && user.Role == auth.RoleUser && user.InvestorID != nil
}

// CanAccessDeal lets admins and auditors see every deal, and restricted
// users only the deals they invest in.
func CanAccessDeal(user *auth.User, d *deal.Deal) bool {
	if user == nil || d == nil {
		return false
	}
	if user.Role == auth.RoleAdmin || user.Role == auth.RoleAuditor {
		return true
	}
	if HasRestrictedAccess(user) {
		return d.HasInvestor(*user.InvestorID)
	}
	return false
}

// RoleName is the display name of a role.
func RoleName(role string) string {
	switch role {
	case auth.RoleAdmin:
		return "Administrator"
	case auth.RoleAuditor:
		return "Auditor"
	case auth.RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

// RoleDescription explains what a role may do.
func RoleDescription(role string) string {
	switch role {
	case auth.RoleAdmin:
		return "Full system access - can create, edit, and delete all content"
	case auth.RoleAuditor:
		return "Can view deals and edit payments, upload documents, but cannot access system administration"
	case auth.RoleUser:
		return "Restricted access - can only view deals where they are assigned as investors, and view related payments"
	default:
		return "No description available"
	}
}
