// Package membership implements the roled-membership mechanics shared by the
// Organization and Team aggregates: a user-keyed member map with an anchor
// role that must survive while the map is non-empty, an optional member
// limit, and role mutation owned by the enclosing aggregate.
package membership

import (
	"errors"
	"sort"
	"time"

	user "github.com/debatehub/orgservice/internal/user/domain"
)

// Role is any totally ordered role enum. Level defines the ordering.
type Role interface {
	comparable
	Level() int
}

var (
	ErrAlreadyMember  = errors.New("user is already a member")
	ErrNotMember      = errors.New("user is not a member")
	ErrAnchorRequired = errors.New("at least one member must hold the anchor role")
	ErrLimitExceeded  = errors.New("member limit exceeded")
)

// Member is an immutable snapshot of a roster entry. Role changes go through
// the roster, never through a Member value.
type Member[R Role] struct {
	UserID   user.ID
	Role     R
	JoinedAt time.Time
}

// HasPermission reports whether the member's role meets the minimum.
func (m Member[R]) HasPermission(min R) bool {
	return m.Role.Level() >= min.Level()
}

// Roster owns the member map of one aggregate. The anchor role is the role
// that must always be held by at least one member while the roster is
// non-empty (OWNER for organizations, ADMIN for teams).
type Roster[R Role] struct {
	anchor  R
	members map[user.ID]Member[R]
}

func NewRoster[R Role](anchor R) *Roster[R] {
	return &Roster[R]{anchor: anchor, members: make(map[user.ID]Member[R])}
}

// Restore rebuilds a roster from persisted members without guard checks.
func Restore[R Role](anchor R, members []Member[R]) *Roster[R] {
	r := NewRoster(anchor)
	for _, m := range members {
		r.members[m.UserID] = m
	}
	return r
}

// Add inserts a member. A nil limit means unlimited.
func (r *Roster[R]) Add(userID user.ID, role R, joinedAt time.Time, limit *int) error {
	if _, ok := r.members[userID]; ok {
		return ErrAlreadyMember
	}
	if limit != nil && len(r.members) >= *limit {
		return ErrLimitExceeded
	}
	r.members[userID] = Member[R]{UserID: userID, Role: role, JoinedAt: joinedAt}
	return nil
}

// ChangeRole mutates a member's role, refusing to demote the last holder of
// the anchor role.
func (r *Roster[R]) ChangeRole(userID user.ID, newRole R) error {
	m, ok := r.members[userID]
	if !ok {
		return ErrNotMember
	}
	if m.Role == r.anchor && newRole != r.anchor && r.countRole(r.anchor) <= 1 {
		return ErrAnchorRequired
	}
	m.Role = newRole
	r.members[userID] = m
	return nil
}

// Remove deletes a member, refusing to remove the last holder of the anchor
// role.
func (r *Roster[R]) Remove(userID user.ID) error {
	m, ok := r.members[userID]
	if !ok {
		return ErrNotMember
	}
	if m.Role == r.anchor && r.countRole(r.anchor) <= 1 {
		return ErrAnchorRequired
	}
	delete(r.members, userID)
	return nil
}

func (r *Roster[R]) Get(userID user.ID) (Member[R], bool) {
	m, ok := r.members[userID]
	return m, ok
}

func (r *Roster[R]) Contains(userID user.ID) bool {
	_, ok := r.members[userID]
	return ok
}

func (r *Roster[R]) Count() int { return len(r.members) }

// HasAnchor reports whether the anchor invariant holds: an empty roster
// satisfies it trivially.
func (r *Roster[R]) HasAnchor() bool {
	if len(r.members) == 0 {
		return true
	}
	return r.countRole(r.anchor) > 0
}

// HasAtLeast reports whether userID is a member whose role meets min.
func (r *Roster[R]) HasAtLeast(userID user.ID, min R) bool {
	m, ok := r.members[userID]
	return ok && m.HasPermission(min)
}

// Members returns value copies sorted by user id for deterministic iteration.
func (r *Roster[R]) Members() []Member[R] {
	out := make([]Member[R], 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID.String() < out[j].UserID.String()
	})
	return out
}

func (r *Roster[R]) countRole(role R) int {
	n := 0
	for _, m := range r.members {
		if m.Role == role {
			n++
		}
	}
	return n
}
