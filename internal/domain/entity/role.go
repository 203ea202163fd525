// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin indicates a community administrator.
	RoleAdmin Role = "admin"
	// RoleSupervisor indicates a community supervisor who decides requests.
	RoleSupervisor Role = "supervisor"
	// RoleAccountant indicates an accountant managing fee collection.
	RoleAccountant Role = "accountant"
	// RoleHouseholdHead indicates the head of a registered household.
	RoleHouseholdHead Role = "householdHead"
	// RoleResident indicates a regular resident account.
	RoleResident Role = "resident"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleAccountant, RoleHouseholdHead, RoleResident:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ContainsAny checks if the roles slice contains any of the given roles.
func (rs Roles) ContainsAny(roles ...Role) bool {
	for _, role := range roles {
		if rs.Contains(role) {
			return true
		}
	}

	return false
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
