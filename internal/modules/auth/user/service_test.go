package user

import (
	"encoding/json"
	"testing"

	"github.com/postform/core/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDefaultRolesForNewUser(t *testing.T) {
	req := require.New(t)

	// Given an empty user table
	// When the first account registers
	// Then it bootstraps as administrator
	req.Equal(models.StringArray{models.RoleAdministrator}, defaultRolesForNewUser(0))

	// Given existing users, every later registration lands as subscriber
	req.Equal(models.StringArray{models.RoleSubscriber}, defaultRolesForNewUser(1))
	req.Equal(models.StringArray{models.RoleSubscriber}, defaultRolesForNewUser(42))
}

func TestRegisterPayloadCannotCarryRoles(t *testing.T) {
	req := require.New(t)

	// Given a registration payload that tries to smuggle in a role grant
	payload := `{"username":"mallory","password":"secret1","roles":["administrator"]}`

	// When it is decoded into the registration DTO
	var dto RegisterDTO
	req.NoError(json.Unmarshal([]byte(payload), &dto))

	// Then the role claim is dropped: the DTO has no channel for roles
	req.Equal(RegisterDTO{Username: "mallory", Password: "secret1"}, dto)
}
