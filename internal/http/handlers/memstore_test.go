package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"raiseme/internal/auth"
	"raiseme/internal/domain"
	"raiseme/internal/middleware"
)

// In-memory repository fakes honoring the domain contracts, so handler
// tests run against isolated state.

type memUsers struct {
	seq   int64
	users map[int64]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[int64]*domain.User{}}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	m.seq++
	user.ID = m.seq
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) List(_ context.Context) ([]domain.User, error) {
	items := make([]domain.User, 0, len(m.users))
	for i := int64(1); i <= m.seq; i++ {
		if u, ok := m.users[i]; ok {
			items = append(items, *u)
		}
	}
	return items, nil
}

func (m *memUsers) Update(_ context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, u := range m.users {
		if u.ID != user.ID && u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memUsers) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLoginDate = &at
	}
	return nil
}

type memCampaigns struct {
	seq       int64
	campaigns map[int64]*domain.Campaign
	users     *memUsers
}

func newMemCampaigns(users *memUsers) *memCampaigns {
	return &memCampaigns{campaigns: map[int64]*domain.Campaign{}, users: users}
}

func (m *memCampaigns) Create(_ context.Context, campaign *domain.Campaign) error {
	m.seq++
	campaign.ID = m.seq
	stored := *campaign
	m.campaigns[campaign.ID] = &stored
	return nil
}

func (m *memCampaigns) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	if owner, err := m.users.GetByID(ctx, c.UserID); err == nil {
		cp.Owner = owner
	}
	return &cp, nil
}

func (m *memCampaigns) List(ctx context.Context) ([]domain.Campaign, error) {
	items := make([]domain.Campaign, 0, len(m.campaigns))
	for i := int64(1); i <= m.seq; i++ {
		if _, ok := m.campaigns[i]; ok {
			c, err := m.GetByID(ctx, i)
			if err != nil {
				return nil, err
			}
			items = append(items, *c)
		}
	}
	return items, nil
}

func (m *memCampaigns) ListByOwner(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Campaign, 0, len(all))
	for _, c := range all {
		if c.UserID == userID {
			items = append(items, c)
		}
	}
	return items, nil
}

func (m *memCampaigns) Update(_ context.Context, campaign *domain.Campaign) error {
	if _, ok := m.campaigns[campaign.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *campaign
	stored.Owner = nil
	m.campaigns[campaign.ID] = &stored
	return nil
}

func (m *memCampaigns) Delete(_ context.Context, id int64) error {
	if _, ok := m.campaigns[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.campaigns, id)
	return nil
}

type memDonations struct {
	seq       int64
	donations map[int64]*domain.Donation
	campaigns *memCampaigns

	// failCreate simulates a storage failure inside the donation
	// transaction; nothing may persist when it fires.
	failCreate bool
}

func newMemDonations(campaigns *memCampaigns) *memDonations {
	return &memDonations{donations: map[int64]*domain.Donation{}, campaigns: campaigns}
}

func (m *memDonations) Create(_ context.Context, donation *domain.Donation) error {
	campaign, ok := m.campaigns.campaigns[donation.CampaignID]
	if !ok {
		return domain.ErrNotFound
	}
	if m.failCreate {
		return errors.New("storage failure")
	}
	campaign.CurrentAmount += donation.Amount
	m.seq++
	donation.ID = m.seq
	stored := *donation
	m.donations[donation.ID] = &stored
	return nil
}

func (m *memDonations) GetByID(_ context.Context, id int64) (*domain.Donation, error) {
	d, ok := m.donations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDonations) ListByCampaign(_ context.Context, campaignID int64) ([]domain.Donation, error) {
	items := make([]domain.Donation, 0, len(m.donations))
	for i := int64(1); i <= m.seq; i++ {
		if d, ok := m.donations[i]; ok && d.CampaignID == campaignID {
			items = append(items, *d)
		}
	}
	return items, nil
}

type memPayments struct {
	seq      int64
	payments map[int64]*domain.Payment
}

func newMemPayments() *memPayments {
	return &memPayments{payments: map[int64]*domain.Payment{}}
}

func (m *memPayments) Create(_ context.Context, payment *domain.Payment) error {
	m.seq++
	payment.ID = m.seq
	stored := *payment
	m.payments[payment.ID] = &stored
	return nil
}

func (m *memPayments) ListByDonation(_ context.Context, donationID int64) ([]domain.Payment, error) {
	items := make([]domain.Payment, 0, len(m.payments))
	for i := int64(1); i <= m.seq; i++ {
		if p, ok := m.payments[i]; ok && p.DonationID == donationID {
			items = append(items, *p)
		}
	}
	return items, nil
}

type memRevoked struct {
	jtis map[string]struct{}
}

func newMemRevoked() *memRevoked {
	return &memRevoked{jtis: map[string]struct{}{}}
}

func (m *memRevoked) Revoke(_ context.Context, jti string, _ time.Time) error {
	m.jtis[jti] = struct{}{}
	return nil
}

func (m *memRevoked) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := m.jtis[jti]
	return ok, nil
}

type testEnv struct {
	app       *App
	users     *memUsers
	campaigns *memCampaigns
	donations *memDonations
	payments  *memPayments
	revoked   *memRevoked
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newMemUsers()
	campaigns := newMemCampaigns(users)
	donations := newMemDonations(campaigns)
	payments := newMemPayments()
	revoked := newMemRevoked()

	app := &App{
		Users:     users,
		Campaigns: campaigns,
		Donations: donations,
		Payments:  payments,
		Auth:      auth.NewAuthority("test-secret", 2*time.Hour, 0, revoked),
		Logger:    zerolog.Nop(),
	}
	return &testEnv{app: app, users: users, campaigns: campaigns, donations: donations, payments: payments, revoked: revoked}
}

func (e *testEnv) addUser(t *testing.T, email, password string, admin bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	user := &domain.User{Email: email, Password: hash, IsAdmin: admin, CreateDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) addCampaign(t *testing.T, owner *domain.User, title string, current float64) *domain.Campaign {
	t.Helper()
	campaign := &domain.Campaign{
		UserID:        owner.ID,
		Title:         title,
		GoalAmount:    1000,
		CurrentAmount: current,
		StartDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:        domain.CampaignStatusActive,
	}
	if err := e.campaigns.Create(context.Background(), campaign); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return campaign
}

func identityFor(user *domain.User) auth.Identity {
	return auth.Identity{UserID: user.ID, Email: user.Email, Admin: user.IsAdmin, Type: auth.TokenTypeAccess, JTI: "test-jti"}
}

func withIdentity(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), identityFor(user)))
}

func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
