package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPasswordAndCheck(t *testing.T) {
	user := &User{Email: "siswa1@mantis.sch.id", Name: "Siswa Satu", Role: RoleStudent}

	require.NoError(t, user.SetPassword("rahasia-sekali"))
	assert.NotEqual(t, "rahasia-sekali", user.PasswordHash)
	assert.True(t, user.CheckPassword("rahasia-sekali"))
	assert.False(t, user.CheckPassword("salah"))
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	user := &User{Email: "a@b.c", Name: "A", Role: RoleAdmin}
	require.NoError(t, user.SetPassword("secret"))

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), user.PasswordHash)
	assert.NotContains(t, string(data), "passwordHash")
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleInstructor.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("teacher").Valid())
	assert.False(t, Role("").Valid())
}

func TestToProfile(t *testing.T) {
	id := uuid.New()
	user := &User{
		BaseUUIDModel: BaseUUIDModel{ID: id},
		Email:         "x@y.z",
		Name:          "X",
		Role:          RoleInstructor,
	}

	profile := user.ToProfile()
	assert.Equal(t, id.String(), profile.ID)
	assert.Equal(t, "x@y.z", profile.Email)
	assert.Equal(t, RoleInstructor, profile.Role)
}
