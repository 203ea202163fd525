// Package policy is the single place where role capabilities are decided.
// Handlers and usecases ask the policy questions ("may this actor decide a
// join request?") instead of matching role strings per route, so the rules
// can be tested without any transport.
package policy

import "commune/internal/domain/entity"

// RequestKind identifies the request workflows gated by the policy.
type RequestKind string

const (
	KindJoinHousehold  RequestKind = "join_household"
	KindResidencyEvent RequestKind = "residency_event"
)

// approverRoles may decide pending requests of any kind.
var approverRoles = entity.Roles{entity.RoleAdmin, entity.RoleSupervisor}

// CanDecide reports whether an actor with the given roles may decide a
// pending request of the given kind.
func CanDecide(roles entity.Roles, kind RequestKind) bool {
	switch kind {
	case KindJoinHousehold, KindResidencyEvent:
		return roles.ContainsAny(approverRoles...)
	default:
		return false
	}
}

// CanSubmit reports whether an actor with the given roles may submit a
// request of the given kind at all. Whether a household head may submit
// into a specific household is an ownership check done by the usecase,
// not a role capability.
func CanSubmit(roles entity.Roles, kind RequestKind) bool {
	switch kind {
	case KindJoinHousehold:
		return roles.ContainsAny(entity.RoleHouseholdHead, entity.RoleAdmin, entity.RoleSupervisor)
	case KindResidencyEvent:
		return roles.ContainsAny(entity.RoleHouseholdHead, entity.RoleAdmin, entity.RoleSupervisor)
	default:
		return false
	}
}

// BypassesOwnership reports whether the actor may submit a join request on
// behalf of a household they do not head.
func BypassesOwnership(roles entity.Roles) bool {
	return roles.ContainsAny(entity.RoleAdmin, entity.RoleSupervisor)
}

// CanViewAll reports whether the actor sees every request of the given
// kind; otherwise listings are scoped to the actor's own submissions.
func CanViewAll(roles entity.Roles, kind RequestKind) bool {
	return CanDecide(roles, kind)
}

// CanManageFees reports whether the actor may create or update fee items
// and record receipts.
func CanManageFees(roles entity.Roles) bool {
	return roles.ContainsAny(entity.RoleAccountant, entity.RoleAdmin)
}

// CanRespondFeedback reports whether the actor may respond to citizen feedback.
func CanRespondFeedback(roles entity.Roles) bool {
	return roles.ContainsAny(entity.RoleSupervisor, entity.RoleAdmin)
}

// CanManageRegistry reports whether the actor may create or update resident
// and household records directly.
func CanManageRegistry(roles entity.Roles) bool {
	return roles.ContainsAny(entity.RoleAdmin, entity.RoleSupervisor)
}
