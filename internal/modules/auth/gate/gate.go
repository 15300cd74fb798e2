// Package gate decides which authenticated users may use the submission
// form. Capabilities are derived from the roles stored on the user record.
package gate

import (
	"github.com/postform/core/internal/models"
)

// Capability names checked by handlers.
const (
	CapSubmitContent = "submit_content"
	CapManageContent = "manage_content"
)

// roleCapabilities maps each role to the capabilities it grants.
var roleCapabilities = map[string][]string{
	models.RoleAdministrator: {CapSubmitContent, CapManageContent},
	models.RoleAuthor:        {CapSubmitContent},
	models.RoleSubscriber:    {},
}

// HasCapability reports whether any of the user's roles grants the capability.
// Unknown roles grant nothing.
func HasCapability(user *models.UserModel, capability string) bool {
	if user == nil {
		return false
	}
	for role, granted := range roleCapabilities {
		if !user.Roles.Contains(role) {
			continue
		}
		for _, name := range granted {
			if name == capability {
				return true
			}
		}
	}
	return false
}

// CanSubmit reports whether the user may create draft submissions.
func CanSubmit(user *models.UserModel) bool {
	return HasCapability(user, CapSubmitContent)
}
