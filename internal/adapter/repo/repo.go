// Package repo contains the PostgreSQL implementations of the domain
// repositories.
package repo

import "raiseme/internal/domain"

var (
	_ domain.UserRepository         = (*UserRepositoryPG)(nil)
	_ domain.CampaignRepository     = (*CampaignRepositoryPG)(nil)
	_ domain.DonationRepository     = (*DonationRepositoryPG)(nil)
	_ domain.PaymentRepository      = (*PaymentRepositoryPG)(nil)
	_ domain.RevokedTokenRepository = (*RevokedTokenRepositoryPG)(nil)
)
