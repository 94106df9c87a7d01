package domain

import (
	"strings"

	"github.com/debatehub/orgservice/internal/domain"
)

// Role is the ordered permission level a member holds in an organization.
type Role int

const (
	RoleGuest Role = iota
	RoleMember
	RoleAdmin
	RoleOwner
)

// Level is the comparison value for the role hierarchy.
func (r Role) Level() int { return int(r) }

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "GUEST"
	case RoleMember:
		return "MEMBER"
	case RoleAdmin:
		return "ADMIN"
	case RoleOwner:
		return "OWNER"
	default:
		return "UNKNOWN"
	}
}

func (r Role) Valid() bool {
	return r >= RoleGuest && r <= RoleOwner
}

// HasPermission reports whether this role meets the minimum required role.
func (r Role) HasPermission(min Role) bool {
	return r.Level() >= min.Level()
}

// CanManage reports whether this role may manage a member holding target.
// Owners manage everyone, admins manage strictly lower roles, others manage
// no one.
func (r Role) CanManage(target Role) bool {
	switch r {
	case RoleOwner:
		return true
	case RoleAdmin:
		return target.Level() < r.Level()
	default:
		return false
	}
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GUEST":
		return RoleGuest, nil
	case "MEMBER":
		return RoleMember, nil
	case "ADMIN":
		return RoleAdmin, nil
	case "OWNER":
		return RoleOwner, nil
	default:
		return 0, domain.NewValidation("organization.role.invalid", "invalid role %q", s)
	}
}
