package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debatehub/orgservice/internal/clock"
	shared "github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	user "github.com/debatehub/orgservice/internal/user/domain"
)

func newTestTeam(t *testing.T, creator user.ID) *Team {
	t.Helper()
	name, err := NewName("Platform Team")
	require.NoError(t, err)
	team, err := NewTeam(shared.NewTeamID(), orgdomain.NewID(), name, EmptyDescription(), creator, clock.NewSystemClock())
	require.NoError(t, err)
	return team
}

func TestNewTeamInstallsCreatorAsAdmin(t *testing.T) {
	creator := user.NewID()
	team := newTestTeam(t, creator)

	role, ok := team.MemberRole(creator)
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)
	assert.NoError(t, team.ValidateInvariants())

	events := team.UncommittedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventCreated, events[0].EventType())
}

func TestTeamLastAdminGuard(t *testing.T) {
	creator := user.NewID()
	team := newTestTeam(t, creator)

	err := team.ChangeMemberRole(creator, RoleMember)
	assert.Equal(t, "team.admin.lastAdmin", shared.CodeOf(err))
	err = team.RemoveMember(creator)
	assert.Equal(t, "team.admin.lastAdmin", shared.CodeOf(err))

	second := user.NewID()
	require.NoError(t, team.AddMember(second, RoleAdmin))
	require.NoError(t, team.ChangeMemberRole(creator, RoleLead))
	require.NoError(t, team.RemoveMember(creator))
}

func TestTeamRoleCanManage(t *testing.T) {
	assert.True(t, RoleAdmin.CanManage(RoleAdmin))
	assert.True(t, RoleLead.CanManage(RoleMember))
	assert.False(t, RoleLead.CanManage(RoleLead))
	assert.False(t, RoleMember.CanManage(RoleMember))
}

func TestTeamMaxMembers(t *testing.T) {
	team := newTestTeam(t, user.NewID())
	require.NoError(t, team.AddMember(user.NewID(), RoleMember))

	// A limit below the current member count is rejected.
	one := 1
	err := team.SetMaxMembers(&one)
	assert.Equal(t, "team.maxMembers.exceedsCurrent", shared.CodeOf(err))

	two := 2
	require.NoError(t, team.SetMaxMembers(&two))
	err = team.AddMember(user.NewID(), RoleMember)
	assert.Equal(t, "team.members.limitExceeded", shared.CodeOf(err))

	// Clearing the limit reopens the team.
	require.NoError(t, team.SetMaxMembers(nil))
	require.NoError(t, team.AddMember(user.NewID(), RoleMember))
}

func TestTeamApplicationAttachment(t *testing.T) {
	team := newTestTeam(t, user.NewID())
	app := shared.NewApplicationID()

	require.NoError(t, team.AttachApplication(app))
	require.NotNil(t, team.ApplicationID())
	assert.Equal(t, app, *team.ApplicationID())

	// Re-attaching the same application is a no-op; a different one is not.
	require.NoError(t, team.AttachApplication(app))
	err := team.AttachApplication(shared.NewApplicationID())
	assert.Equal(t, "team.application.alreadyAttached", shared.CodeOf(err))

	team.DetachApplication()
	assert.Nil(t, team.ApplicationID())
}

func TestTeamDeactivation(t *testing.T) {
	team := newTestTeam(t, user.NewID())
	team.MarkEventsCommitted()

	team.Deactivate()
	assert.False(t, team.IsActive())
	events := team.UncommittedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventDeactivated, events[0].EventType())

	// Idempotent: a second call stages nothing.
	team.MarkEventsCommitted()
	team.Deactivate()
	assert.Empty(t, team.UncommittedEvents())

	err := team.AddMember(user.NewID(), RoleMember)
	assert.Equal(t, "team.inactive", shared.CodeOf(err))

	team.Reactivate()
	assert.NoError(t, team.AddMember(user.NewID(), RoleMember))
}

func TestTeamRestoreRoundTrip(t *testing.T) {
	creator := user.NewID()
	team := newTestTeam(t, creator)
	require.NoError(t, team.AddMember(user.NewID(), RoleLead))

	restored := RestoreTeam(team.ID(), team.OrganizationID(), team.ApplicationID(),
		team.Name(), team.Description(), team.MaxMembers(), team.IsActive(),
		team.Members(), team.CreatedAt(), team.UpdatedAt(), 2, clock.NewSystemClock())

	assert.Equal(t, team.Members(), restored.Members())
	assert.Equal(t, int64(2), restored.Version())
	assert.Empty(t, restored.UncommittedEvents())
	assert.NoError(t, restored.ValidateInvariants())
}
