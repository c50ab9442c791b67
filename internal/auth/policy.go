package auth

import "raiseme/internal/domain"

// Per-route authorization rules. Campaign reads and donation
// create/read are open and have no rule here.

// CanUpdateUser allows self-service profile updates only: the acting
// identity's email must equal the target user's email.
func CanUpdateUser(id Identity, target *domain.User) bool {
	return target != nil && id.Email == target.Email
}

// CanCreateCampaign requires the acting identity to match the user
// referenced by the submitted owner id.
func CanCreateCampaign(id Identity, owner *domain.User) bool {
	return owner != nil && id.Email == owner.Email
}

// CanManageCampaign allows update and delete for the campaign owner
// or any administrator. Ownership is compared by user id; the email
// identity is carried in the token for the email-based rules above.
func CanManageCampaign(id Identity, campaign *domain.Campaign) bool {
	if campaign == nil {
		return false
	}
	return id.UserID == campaign.UserID || id.Admin
}
