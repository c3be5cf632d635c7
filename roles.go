package auth

// IsValid checks if the role is one of the predefined valid roles
func (r MemberRole) IsValid() bool {
	switch r {
	case RoleGuest, RoleMember, RoleAdmin, RoleOwner:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role carries administrative rights.
func (r MemberRole) IsAdmin() bool {
	return r.IsAtLeast(RoleAdmin)
}

// IsAtLeast checks if this role meets the minimum required level
func (r MemberRole) IsAtLeast(minRole MemberRole) bool {
	roleHierarchy := map[MemberRole]int{
		RoleGuest:  0,
		RoleMember: 1,
		RoleAdmin:  2,
		RoleOwner:  3,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []MemberRole {
	return []MemberRole{
		RoleGuest,
		RoleMember,
		RoleAdmin,
		RoleOwner,
	}
}

// ParseRole safely parses a string into a MemberRole type
func ParseRole(roleStr string) (MemberRole, bool) {
	role := MemberRole(roleStr)
	return role, role.IsValid()
}
