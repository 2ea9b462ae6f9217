package service

import (
	"movie_reservation/constants"
	"movie_reservation/model"
	"movie_reservation/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteAndDemote(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	roles := NewRoleService(f.db)
	user := f.user(t, "john.doe@example.com", constants.ROLE_USER)

	promoted, err := roles.Promote(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ROLE_ADMIN, promoted.Role)

	_, err = roles.Promote(ctx, user.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))

	demoted, err := roles.Demote(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ROLE_USER, demoted.Role)

	_, err = roles.Demote(ctx, user.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))

	var stored model.User
	require.NoError(t, f.db.First(&stored, user.ID).Error)
	assert.Equal(t, constants.ROLE_USER, stored.Role)
}

func TestSuperAdminRoleNeverChanges(t *testing.T) {
	f := newFixture(t)
	ctx := testContext(t)
	roles := NewRoleService(f.db)
	root := f.user(t, "root@example.com", constants.ROLE_SUPER_ADMIN)

	_, err := roles.Promote(ctx, root.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))
	_, err = roles.Demote(ctx, root.ID)
	assert.True(t, utils.IsKind(err, utils.KindInvalidState))

	var stored model.User
	require.NoError(t, f.db.First(&stored, root.ID).Error)
	assert.Equal(t, constants.ROLE_SUPER_ADMIN, stored.Role)
}

func TestRoleChangeOnMissingUser(t *testing.T) {
	f := newFixture(t)
	_, err := NewRoleService(f.db).Promote(testContext(t), 404)
	assert.EqualError(t, err, "User not found")
}
