package domain

import (
	"errors"
	"time"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
	"github.com/debatehub/orgservice/internal/membership"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	user "github.com/debatehub/orgservice/internal/user/domain"
)

// Member is a value snapshot of a team membership.
type Member = membership.Member[Role]

// Team is a working group inside one organization. It is anchored on ADMIN:
// while the team has members, at least one must be an admin.
type Team struct {
	domain.AggregateBase
	id            domain.TeamID
	orgID         orgdomain.ID
	applicationID *domain.ApplicationID
	name          Name
	description   Description
	maxMembers    *int
	active        bool
	roster        *membership.Roster[Role]
	clk           clock.Clock
}

// NewTeam creates a team with the creator installed as ADMIN and a Created
// event staged.
func NewTeam(id domain.TeamID, orgID orgdomain.ID, name Name, description Description, creator user.ID, clk clock.Clock) (*Team, error) {
	if id.IsZero() {
		return nil, domain.NewValidation("team.id.required", "team id is required")
	}
	if orgID.IsZero() {
		return nil, domain.NewValidation("team.organization.required", "team must belong to an organization")
	}
	if name.IsZero() {
		return nil, domain.NewValidation("team.name.required", "team name is required")
	}
	if creator.IsZero() {
		return nil, domain.NewValidation("team.creator.required", "creator user id is required")
	}

	t := &Team{
		AggregateBase: domain.NewAggregateBase(clk.Now()),
		id:            id,
		orgID:         orgID,
		name:          name,
		description:   description,
		active:        true,
		roster:        membership.NewRoster(RoleAdmin),
		clk:           clk,
	}
	if err := t.roster.Add(creator, RoleAdmin, clk.Now(), nil); err != nil {
		return nil, err
	}
	t.Record(NewCreated(id, orgID, name.String(), creator))
	return t, nil
}

// RestoreTeam rebuilds a team from persisted state. No events are staged.
func RestoreTeam(id domain.TeamID, orgID orgdomain.ID, applicationID *domain.ApplicationID,
	name Name, description Description, maxMembers *int, active bool, members []Member,
	createdAt, updatedAt time.Time, version int64, clk clock.Clock) *Team {
	return &Team{
		AggregateBase: domain.RestoreAggregateBase(createdAt, updatedAt, version),
		id:            id,
		orgID:         orgID,
		applicationID: applicationID,
		name:          name,
		description:   description,
		maxMembers:    maxMembers,
		active:        active,
		roster:        membership.Restore(RoleAdmin, members),
		clk:           clk,
	}
}

func (t *Team) Update(newName Name, newDescription Description) error {
	if err := t.requireActive("cannot update an inactive team"); err != nil {
		return err
	}
	if newName.IsZero() {
		return domain.NewValidation("team.name.required", "team name is required")
	}
	if t.name != newName || t.description != newDescription {
		t.name = newName
		t.description = newDescription
		t.Touch(t.clk.Now())
	}
	return nil
}

// AttachApplication binds the team to an application. A team serves at most
// one application at a time.
func (t *Team) AttachApplication(appID domain.ApplicationID) error {
	if err := t.requireActive("cannot attach an application to an inactive team"); err != nil {
		return err
	}
	if t.applicationID != nil && *t.applicationID != appID {
		return domain.NewRuleViolation("team.application.alreadyAttached",
			"team is already attached to application %s", t.applicationID)
	}
	t.applicationID = &appID
	t.Touch(t.clk.Now())
	return nil
}

func (t *Team) DetachApplication() {
	if t.applicationID == nil {
		return
	}
	t.applicationID = nil
	t.Touch(t.clk.Now())
}

// SetMaxMembers sets or clears the member limit. A limit below the current
// member count is rejected.
func (t *Team) SetMaxMembers(limit *int) error {
	if limit != nil {
		if *limit < 1 {
			return domain.NewValidation("team.maxMembers.invalid", "member limit must be positive")
		}
		if t.roster.Count() > *limit {
			return domain.NewRuleViolation("team.maxMembers.exceedsCurrent",
				"cannot set member limit below the current member count of %d", t.roster.Count())
		}
	}
	t.maxMembers = limit
	t.Touch(t.clk.Now())
	return nil
}

// AddMember inserts a member and stages a MemberAdded event.
func (t *Team) AddMember(userID user.ID, role Role) error {
	if err := t.requireActive("cannot add members to an inactive team"); err != nil {
		return err
	}
	if !role.Valid() {
		return domain.NewValidation("team.role.invalid", "invalid team role %d", role)
	}

	err := t.roster.Add(userID, role, t.clk.Now(), t.maxMembers)
	switch {
	case errors.Is(err, membership.ErrAlreadyMember):
		return domain.NewAlreadyExists("team.member.alreadyMember", "user %s is already a member of this team", userID)
	case errors.Is(err, membership.ErrLimitExceeded):
		return domain.NewRuleViolation("team.members.limitExceeded", "team has reached its member limit")
	case err != nil:
		return err
	}
	t.Touch(t.clk.Now())
	t.Record(NewMemberAdded(t.id, userID, role))
	return nil
}

// ChangeMemberRole mutates a member's role, refusing to demote the last
// admin.
func (t *Team) ChangeMemberRole(userID user.ID, newRole Role) error {
	if err := t.requireActive("cannot change roles in an inactive team"); err != nil {
		return err
	}
	if !newRole.Valid() {
		return domain.NewValidation("team.role.invalid", "invalid team role %d", newRole)
	}

	err := t.roster.ChangeRole(userID, newRole)
	switch {
	case errors.Is(err, membership.ErrNotMember):
		return domain.NewNotFound("team.member.notMember", "user %s is not a member of this team", userID)
	case errors.Is(err, membership.ErrAnchorRequired):
		return domain.NewRuleViolation("team.admin.lastAdmin", "cannot demote the last admin of the team")
	case err != nil:
		return err
	}
	t.Touch(t.clk.Now())
	return nil
}

// RemoveMember removes a member and stages a MemberRemoved event, refusing
// to remove the last admin.
func (t *Team) RemoveMember(userID user.ID) error {
	if err := t.requireActive("cannot remove members from an inactive team"); err != nil {
		return err
	}

	err := t.roster.Remove(userID)
	switch {
	case errors.Is(err, membership.ErrNotMember):
		return domain.NewNotFound("team.member.notMember", "user %s is not a member of this team", userID)
	case errors.Is(err, membership.ErrAnchorRequired):
		return domain.NewRuleViolation("team.admin.lastAdmin", "cannot remove the last admin of the team")
	case err != nil:
		return err
	}
	t.Touch(t.clk.Now())
	t.Record(NewMemberRemoved(t.id, userID))
	return nil
}

// Deactivate is idempotent and stages a Deactivated event on the first call.
func (t *Team) Deactivate() {
	if !t.active {
		return
	}
	t.active = false
	t.Touch(t.clk.Now())
	t.Record(NewDeactivated(t.id))
}

func (t *Team) Reactivate() {
	if t.active {
		return
	}
	t.active = true
	t.Touch(t.clk.Now())
}

func (t *Team) IsMember(userID user.ID) bool {
	return t.roster.Contains(userID)
}

func (t *Team) MemberRole(userID user.ID) (Role, bool) {
	m, ok := t.roster.Get(userID)
	if !ok {
		return 0, false
	}
	return m.Role, true
}

// HasRole reports whether userID is a member holding minRole or higher.
func (t *Team) HasRole(userID user.ID, minRole Role) bool {
	return t.roster.HasAtLeast(userID, minRole)
}

// ValidateInvariants re-checks every aggregate invariant.
func (t *Team) ValidateInvariants() error {
	if t.name.IsZero() {
		return domain.NewRuleViolation("team.name.required", "team must have a name")
	}
	if !t.roster.HasAnchor() {
		return domain.NewRuleViolation("team.admin.required", "team must have at least one admin")
	}
	if t.maxMembers != nil && t.roster.Count() > *t.maxMembers {
		return domain.NewRuleViolation("team.members.limitExceeded",
			"team has %d members, exceeding the limit of %d", t.roster.Count(), *t.maxMembers)
	}
	return nil
}

func (t *Team) ID() domain.TeamID                    { return t.id }
func (t *Team) OrganizationID() orgdomain.ID         { return t.orgID }
func (t *Team) ApplicationID() *domain.ApplicationID { return t.applicationID }
func (t *Team) Name() Name                           { return t.name }
func (t *Team) Description() Description             { return t.description }
func (t *Team) MaxMembers() *int                     { return t.maxMembers }
func (t *Team) IsActive() bool                       { return t.active }
func (t *Team) Members() []Member                    { return t.roster.Members() }
func (t *Team) MemberCount() int                     { return t.roster.Count() }

func (t *Team) requireActive(msg string) error {
	if !t.active {
		return domain.NewRuleViolation("team.inactive", "%s", msg)
	}
	return nil
}
