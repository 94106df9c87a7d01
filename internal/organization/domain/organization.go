package domain

import (
	"errors"
	"time"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
	"github.com/debatehub/orgservice/internal/membership"
	user "github.com/debatehub/orgservice/internal/user/domain"
)

// Member is a value snapshot of an organization membership. Role changes go
// through the aggregate, never through a Member value.
type Member = membership.Member[Role]

// Organization is the aggregate root for a tenant. All mutation goes through
// its methods; each either fully applies or fully rejects. The clock is the
// aggregate's only ambient dependency; everything else comes in as arguments.
type Organization struct {
	domain.AggregateBase
	id          ID
	name        Name
	description Description
	settings    Settings
	active      bool
	roster      *membership.Roster[Role]
	clk         clock.Clock
}

// NewOrganization creates an organization with the creator installed as
// OWNER and a Created event staged.
func NewOrganization(id ID, name Name, description Description, creator user.ID, clk clock.Clock) (*Organization, error) {
	if id.IsZero() {
		return nil, domain.NewValidation("organization.id.required", "organization id is required")
	}
	if name.IsZero() {
		return nil, domain.NewValidation("organization.name.required", "organization name is required")
	}
	if creator.IsZero() {
		return nil, domain.NewValidation("organization.creator.required", "creator user id is required")
	}

	o := &Organization{
		AggregateBase: domain.NewAggregateBase(clk.Now()),
		id:            id,
		name:          name,
		description:   description,
		settings:      DefaultSettings(),
		active:        true,
		roster:        membership.NewRoster(RoleOwner),
		clk:           clk,
	}
	// Creator joins unconditionally; default limits cannot reject the first
	// member.
	if err := o.roster.Add(creator, RoleOwner, clk.Now(), nil); err != nil {
		return nil, err
	}
	o.Record(NewCreated(id, name.String(), description.String(), creator))
	return o, nil
}

// RestoreOrganization rebuilds an organization from persisted state. No
// events are staged.
func RestoreOrganization(id ID, name Name, description Description, settings Settings,
	active bool, members []Member, createdAt, updatedAt time.Time, version int64, clk clock.Clock) *Organization {
	return &Organization{
		AggregateBase: domain.RestoreAggregateBase(createdAt, updatedAt, version),
		id:            id,
		name:          name,
		description:   description,
		settings:      settings,
		active:        active,
		roster:        membership.Restore(RoleOwner, members),
		clk:           clk,
	}
}

// Update replaces name and description. A no-op when nothing changed; stages
// an Updated event otherwise.
func (o *Organization) Update(newName Name, newDescription Description) error {
	if err := o.requireActive("organization.inactive", "cannot update an inactive organization"); err != nil {
		return err
	}
	if newName.IsZero() {
		return domain.NewValidation("organization.name.required", "organization name is required")
	}

	changed := false
	if o.name != newName {
		o.name = newName
		changed = true
	}
	if o.description != newDescription {
		o.description = newDescription
		changed = true
	}
	if changed {
		o.Touch(o.clk.Now())
		o.Record(NewUpdated(o.id, o.name.String(), o.description.String()))
	}
	return nil
}

// UpdateSettings replaces settings wholesale. Cross-cutting validation
// (member count against a lowered limit) is the domain service's job before
// calling this.
func (o *Organization) UpdateSettings(newSettings Settings) error {
	if err := o.requireActive("organization.inactive", "cannot update settings of an inactive organization"); err != nil {
		return err
	}
	o.settings = newSettings
	o.Touch(o.clk.Now())
	return nil
}

// AddUser inserts a member and stages a UserAdded event.
func (o *Organization) AddUser(userID user.ID, role Role) error {
	if err := o.requireActive("organization.inactive", "cannot add users to an inactive organization"); err != nil {
		return err
	}
	if !role.Valid() {
		return domain.NewValidation("organization.role.invalid", "invalid role %d", role)
	}

	err := o.roster.Add(userID, role, o.clk.Now(), o.settings.MaxMembers())
	switch {
	case errors.Is(err, membership.ErrAlreadyMember):
		return domain.NewAlreadyExists("organization.user.alreadyMember", "user %s is already a member of this organization", userID)
	case errors.Is(err, membership.ErrLimitExceeded):
		return domain.NewRuleViolation("organization.members.limitExceeded", "organization has reached its member limit")
	case err != nil:
		return err
	}
	o.Touch(o.clk.Now())
	o.Record(NewUserAdded(o.id, userID, role))
	return nil
}

// UpdateUserRole mutates a member's role in place, refusing to demote the
// last owner.
func (o *Organization) UpdateUserRole(userID user.ID, newRole Role) error {
	if err := o.requireActive("organization.inactive", "cannot update user roles in an inactive organization"); err != nil {
		return err
	}
	if !newRole.Valid() {
		return domain.NewValidation("organization.role.invalid", "invalid role %d", newRole)
	}

	err := o.roster.ChangeRole(userID, newRole)
	switch {
	case errors.Is(err, membership.ErrNotMember):
		return domain.NewNotFound("organization.user.notMember", "user %s is not a member of this organization", userID)
	case errors.Is(err, membership.ErrAnchorRequired):
		return domain.NewRuleViolation("organization.owner.lastOwner", "cannot demote the last owner of the organization")
	case err != nil:
		return err
	}
	o.Touch(o.clk.Now())
	return nil
}

// RemoveUser removes a member and stages a UserRemoved event, refusing to
// remove the last owner.
func (o *Organization) RemoveUser(userID user.ID) error {
	if err := o.requireActive("organization.inactive", "cannot remove users from an inactive organization"); err != nil {
		return err
	}

	err := o.roster.Remove(userID)
	switch {
	case errors.Is(err, membership.ErrNotMember):
		return domain.NewNotFound("organization.user.notMember", "user %s is not a member of this organization", userID)
	case errors.Is(err, membership.ErrAnchorRequired):
		return domain.NewRuleViolation("organization.owner.lastOwner", "cannot remove the last owner of the organization")
	case err != nil:
		return err
	}
	o.Touch(o.clk.Now())
	o.Record(NewUserRemoved(o.id, userID))
	return nil
}

// Deactivate is idempotent. Deactivation is the terminal lifecycle state;
// organizations are never physically deleted here.
func (o *Organization) Deactivate() {
	if !o.active {
		return
	}
	o.active = false
	o.Touch(o.clk.Now())
}

// Reactivate is idempotent and is the only mutation allowed while inactive.
func (o *Organization) Reactivate() {
	if o.active {
		return
	}
	o.active = true
	o.Touch(o.clk.Now())
}

func (o *Organization) IsMember(userID user.ID) bool {
	return o.roster.Contains(userID)
}

func (o *Organization) UserRole(userID user.ID) (Role, bool) {
	m, ok := o.roster.Get(userID)
	if !ok {
		return 0, false
	}
	return m.Role, true
}

// HasRole reports whether userID is a member holding minRole or higher.
func (o *Organization) HasRole(userID user.ID, minRole Role) bool {
	return o.roster.HasAtLeast(userID, minRole)
}

// ValidateInvariants re-checks every aggregate invariant. Mutators enforce
// their own slice of these; this is the defensive whole-state check for
// reconstruction paths and tests.
func (o *Organization) ValidateInvariants() error {
	if o.name.IsZero() {
		return domain.NewRuleViolation("organization.name.required", "organization must have a name")
	}
	if !o.roster.HasAnchor() {
		return domain.NewRuleViolation("organization.owner.required", "organization must have at least one owner")
	}
	if limit := o.settings.MaxMembers(); limit != nil && o.roster.Count() > *limit {
		return domain.NewRuleViolation("organization.members.limitExceeded",
			"organization has %d members, exceeding the limit of %d", o.roster.Count(), *limit)
	}
	return nil
}

func (o *Organization) ID() ID                   { return o.id }
func (o *Organization) Name() Name               { return o.name }
func (o *Organization) Description() Description { return o.description }
func (o *Organization) Settings() Settings       { return o.settings }
func (o *Organization) IsActive() bool           { return o.active }
func (o *Organization) Members() []Member        { return o.roster.Members() }
func (o *Organization) MemberCount() int         { return o.roster.Count() }

func (o *Organization) requireActive(code, msg string) error {
	if !o.active {
		return domain.NewRuleViolation(code, "%s", msg)
	}
	return nil
}
