package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/domain"
	orgdomain "github.com/debatehub/orgservice/internal/organization/domain"
	userdomain "github.com/debatehub/orgservice/internal/user/domain"
	"github.com/debatehub/orgservice/pkg/db"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(Models()...))
	return conn
}

func seedOrg(t *testing.T, name string, owner userdomain.ID) *orgdomain.Organization {
	t.Helper()
	n, err := orgdomain.NewName(name)
	require.NoError(t, err)
	d, err := orgdomain.NewDescription("seeded for tests")
	require.NoError(t, err)
	org, err := orgdomain.NewOrganization(orgdomain.NewID(), n, d, owner, clock.NewSystemClock())
	require.NoError(t, err)
	return org
}

func TestSaveAndFindRoundTrip(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	ctx := context.Background()

	owner := userdomain.NewID()
	org := seedOrg(t, "Acme Corp", owner)
	require.NoError(t, org.AddUser(userdomain.NewID(), orgdomain.RoleAdmin))
	require.NoError(t, org.AddUser(userdomain.NewID(), orgdomain.RoleMember))

	require.NoError(t, repo.Save(ctx, org))
	assert.Equal(t, int64(1), org.Version())

	loaded, err := repo.FindByID(ctx, org.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, org.ID(), loaded.ID())
	assert.Equal(t, "Acme Corp", loaded.Name().String())
	assert.Equal(t, "seeded for tests", loaded.Description().String())
	assert.Equal(t, 3, loaded.MemberCount())
	assert.True(t, loaded.IsActive())
	assert.Equal(t, int64(1), loaded.Version())
	role, ok := loaded.UserRole(owner)
	require.True(t, ok)
	assert.Equal(t, orgdomain.RoleOwner, role)
	require.NotNil(t, loaded.Settings().MaxMembers())
	assert.Equal(t, 100, *loaded.Settings().MaxMembers())
}

func TestFindMissingReturnsNil(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	org, err := repo.FindByID(context.Background(), orgdomain.NewID())
	require.NoError(t, err)
	assert.Nil(t, org)
}

func TestSaveRewritesMemberRows(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	ctx := context.Background()

	owner := userdomain.NewID()
	org := seedOrg(t, "Acme Corp", owner)
	extra := userdomain.NewID()
	require.NoError(t, org.AddUser(extra, orgdomain.RoleMember))
	require.NoError(t, repo.Save(ctx, org))

	require.NoError(t, org.RemoveUser(extra))
	require.NoError(t, repo.Save(ctx, org))

	loaded, err := repo.FindByID(ctx, org.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.MemberCount())
	assert.False(t, loaded.IsMember(extra))
}

func TestOptimisticVersionConflict(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	ctx := context.Background()

	org := seedOrg(t, "Acme Corp", userdomain.NewID())
	require.NoError(t, repo.Save(ctx, org))

	// Two loads of the same row race on save.
	first, err := repo.FindByID(ctx, org.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, org.ID())
	require.NoError(t, err)

	require.NoError(t, first.AddUser(userdomain.NewID(), orgdomain.RoleMember))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.AddUser(userdomain.NewID(), orgdomain.RoleMember))
	err = repo.Save(ctx, second)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "organization.concurrentUpdate", domain.CodeOf(err))
}

func TestDuplicateNameMapsToAlreadyExists(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, seedOrg(t, "Acme Corp", userdomain.NewID())))
	err := repo.Save(ctx, seedOrg(t, "Acme Corp", userdomain.NewID()))
	assert.True(t, domain.IsKind(err, domain.KindAlreadyExists))
	assert.Equal(t, "organization.name.taken", domain.CodeOf(err))
}

func TestExistsByNameAndFindByName(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	ctx := context.Background()

	org := seedOrg(t, "Acme Corp", userdomain.NewID())
	require.NoError(t, repo.Save(ctx, org))

	name := org.Name()
	exists, err := repo.ExistsByName(ctx, name)
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := repo.FindByName(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, org.ID(), found.ID())

	other, err := orgdomain.NewName("Nobody Here")
	require.NoError(t, err)
	exists, err = repo.ExistsByName(ctx, other)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFindByMemberUserID(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	ctx := context.Background()

	shared := userdomain.NewID()
	a := seedOrg(t, "Org A", shared)
	b := seedOrg(t, "Org B", userdomain.NewID())
	require.NoError(t, b.AddUser(shared, orgdomain.RoleMember))
	c := seedOrg(t, "Org C", userdomain.NewID())

	for _, org := range []*orgdomain.Organization{a, b, c} {
		require.NoError(t, repo.Save(ctx, org))
	}

	orgs, err := repo.FindByMemberUserID(ctx, shared)
	require.NoError(t, err)
	require.Len(t, orgs, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFindAllActiveExcludesDeactivated(t *testing.T) {
	repo := NewRepository(setupDB(t), clock.NewSystemClock())
	ctx := context.Background()

	active := seedOrg(t, "Active Org", userdomain.NewID())
	inactive := seedOrg(t, "Inactive Org", userdomain.NewID())
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, active))
	require.NoError(t, repo.Save(ctx, inactive))

	orgs, err := repo.FindAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, active.ID(), orgs[0].ID())
}

func TestDeleteRemovesOrgAndMembers(t *testing.T) {
	conn := setupDB(t)
	repo := NewRepository(conn, clock.NewSystemClock())
	ctx := context.Background()

	org := seedOrg(t, "Acme Corp", userdomain.NewID())
	require.NoError(t, repo.Save(ctx, org))
	require.NoError(t, repo.Delete(ctx, org.ID()))

	loaded, err := repo.FindByID(ctx, org.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	var memberCount int64
	require.NoError(t, conn.Table("organization_members").Count(&memberCount).Error)
	assert.Zero(t, memberCount)
}
