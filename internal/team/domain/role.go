// Package domain holds the Team aggregate: a working group inside an
// organization, optionally attached to one application.
package domain

import (
	"strings"

	"github.com/debatehub/orgservice/internal/domain"
)

// Role orders team permissions. Teams are anchored on ADMIN the way
// organizations are anchored on OWNER.
type Role int

const (
	RoleMember Role = iota
	RoleLead
	RoleAdmin
)

func (r Role) Level() int { return int(r) }

func (r Role) Valid() bool { return r >= RoleMember && r <= RoleAdmin }

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "MEMBER"
	case RoleLead:
		return "LEAD"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// HasPermission reports whether r meets the minimum role.
func (r Role) HasPermission(min Role) bool { return r.Level() >= min.Level() }

// CanManage reports whether r may assign or change the target role. Admins
// manage every role; leads manage strictly lower roles.
func (r Role) CanManage(target Role) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleLead:
		return target.Level() < r.Level()
	default:
		return false
	}
}

func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MEMBER":
		return RoleMember, nil
	case "LEAD":
		return RoleLead, nil
	case "ADMIN":
		return RoleAdmin, nil
	default:
		return 0, domain.NewValidation("team.role.invalid", "invalid team role %q", s)
	}
}
