package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleOwner.HasPermission(RoleAdmin))
	assert.True(t, RoleAdmin.HasPermission(RoleAdmin))
	assert.False(t, RoleMember.HasPermission(RoleAdmin))
	assert.True(t, RoleMember.HasPermission(RoleGuest))
}

func TestRoleCanManage(t *testing.T) {
	// Owners manage everyone, themselves included.
	assert.True(t, RoleOwner.CanManage(RoleOwner))
	assert.True(t, RoleOwner.CanManage(RoleGuest))

	// Admins manage strictly lower roles only.
	assert.True(t, RoleAdmin.CanManage(RoleMember))
	assert.False(t, RoleAdmin.CanManage(RoleAdmin))
	assert.False(t, RoleAdmin.CanManage(RoleOwner))

	assert.False(t, RoleMember.CanManage(RoleGuest))
	assert.False(t, RoleGuest.CanManage(RoleGuest))
}

func TestParseRole(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Role
	}{
		{"OWNER", RoleOwner},
		{"owner", RoleOwner},
		{" Admin ", RoleAdmin},
		{"member", RoleMember},
		{"GUEST", RoleGuest},
	} {
		got, err := ParseRole(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseRole("superuser")
	assert.Error(t, err)
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "OWNER", RoleOwner.String())
	assert.Equal(t, "GUEST", RoleGuest.String())
}
