package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory domain.Store for usecase tests. memTxManager runs
// the transactional closure against a clone and copies it back only on
// success, mirroring the rollback behavior of the real database.
type memStore struct {
	clients     map[string]*domain.Client
	profits     []*domain.ProfitEntry
	withdrawals map[string]*domain.Withdrawal
	licenses    []*domain.License
	credentials map[string]*domain.PortalCredential
}

func newMemStore() *memStore {
	return &memStore{
		clients:     make(map[string]*domain.Client),
		withdrawals: make(map[string]*domain.Withdrawal),
		credentials: make(map[string]*domain.PortalCredential),
	}
}

func (s *memStore) addClient(client *domain.Client) {
	c := *client
	s.clients[c.ID] = &c
}

func (s *memStore) clone() *memStore {
	out := newMemStore()
	for id, client := range s.clients {
		c := *client
		out.clients[id] = &c
	}
	for _, entry := range s.profits {
		e := *entry
		out.profits = append(out.profits, &e)
	}
	for id, wd := range s.withdrawals {
		w := *wd
		out.withdrawals[id] = &w
	}
	for _, license := range s.licenses {
		l := *license
		out.licenses = append(out.licenses, &l)
	}
	for username, cred := range s.credentials {
		c := *cred
		out.credentials[username] = &c
	}
	return out
}

func (s *memStore) copyFrom(o *memStore) {
	s.clients = o.clients
	s.profits = o.profits
	s.withdrawals = o.withdrawals
	s.licenses = o.licenses
	s.credentials = o.credentials
}

func (s *memStore) Clients() domain.ClientRepository         { return &memClientRepo{s: s} }
func (s *memStore) Profits() domain.ProfitRepository         { return &memProfitRepo{s: s} }
func (s *memStore) Withdrawals() domain.WithdrawalRepository { return &memWithdrawalRepo{s: s} }
func (s *memStore) Licenses() domain.LicenseRepository       { return &memLicenseRepo{s: s} }

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) WithinTx(_ context.Context, fn func(store domain.Store) error) error {
	attempt := m.store.clone()
	if err := fn(attempt); err != nil {
		return err
	}
	m.store.copyFrom(attempt)
	return nil
}

type memClientRepo struct {
	s *memStore
}

func (r *memClientRepo) CreateClient(_ context.Context, client *domain.Client) error {
	c := *client
	r.s.clients[c.ID] = &c
	return nil
}

func (r *memClientRepo) UpdateClient(_ context.Context, client *domain.Client) error {
	if _, ok := r.s.clients[client.ID]; !ok {
		return domain.ErrClientNotFound
	}
	c := *client
	r.s.clients[c.ID] = &c
	return nil
}

func (r *memClientRepo) GetClientByID(_ context.Context, clientID string) (*domain.Client, error) {
	client, ok := r.s.clients[clientID]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	c := *client
	return &c, nil
}

func (r *memClientRepo) GetClientByIDForUpdate(ctx context.Context, clientID string) (*domain.Client, error) {
	return r.GetClientByID(ctx, clientID)
}

func (r *memClientRepo) GetClientByReferralCode(_ context.Context, code string) (*domain.Client, error) {
	for _, client := range r.s.clients {
		if client.ReferralCode == code {
			c := *client
			return &c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *memClientRepo) ListClients(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.s.clients))
	for _, client := range r.s.clients {
		c := *client
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memClientRepo) ListClientsByReferrerID(_ context.Context, referrerID string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, client := range r.s.clients {
		if client.ReferrerID == referrerID {
			c := *client
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memClientRepo) ListReferralCodesByPrefix(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for _, client := range r.s.clients {
		if strings.HasPrefix(client.ReferralCode, prefix) {
			out = append(out, client.ReferralCode)
		}
	}
	return out, nil
}

func (r *memClientRepo) AddClientBalances(_ context.Context, clientID string, equityDelta, withdrawableDelta decimal.Decimal) error {
	client, ok := r.s.clients[clientID]
	if !ok {
		return domain.ErrClientNotFound
	}
	client.CurrentEquity = client.CurrentEquity.Add(equityDelta)
	client.WithdrawableBalance = client.WithdrawableBalance.Add(withdrawableDelta)
	return nil
}

func (r *memClientRepo) UpdateClientExpiry(_ context.Context, clientID string, expiry time.Time) error {
	client, ok := r.s.clients[clientID]
	if !ok {
		return domain.ErrClientNotFound
	}
	client.Expiry = &expiry
	return nil
}

func (r *memClientRepo) CountClients(_ context.Context) (int64, error) {
	return int64(len(r.s.clients)), nil
}

func (r *memClientRepo) SumClientBalances(_ context.Context) (*domain.BalanceSummary, error) {
	summary := &domain.BalanceSummary{
		TotalEquity:       decimal.Zero,
		TotalWithdrawable: decimal.Zero,
	}
	for _, client := range r.s.clients {
		summary.TotalEquity = summary.TotalEquity.Add(client.CurrentEquity)
		summary.TotalWithdrawable = summary.TotalWithdrawable.Add(client.WithdrawableBalance)
	}
	return summary, nil
}

type memProfitRepo struct {
	s *memStore
}

func (r *memProfitRepo) CreateProfitEntry(_ context.Context, entry *domain.ProfitEntry) error {
	e := *entry
	r.s.profits = append(r.s.profits, &e)
	return nil
}

func (r *memProfitRepo) ListProfitEntriesByClientID(_ context.Context, clientID string) ([]*domain.ProfitEntry, error) {
	var out []*domain.ProfitEntry
	for _, entry := range r.s.profits {
		if entry.ClientID == clientID {
			e := *entry
			out = append(out, &e)
		}
	}
	return out, nil
}

func (r *memProfitRepo) SumBonusByClientID(_ context.Context, clientID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, entry := range r.s.profits {
		if entry.ClientID == clientID {
			total = total.Add(entry.Bonus)
		}
	}
	return total, nil
}

func (r *memProfitRepo) SummarizeShares(_ context.Context) (*domain.ShareSummary, error) {
	summary := &domain.ShareSummary{
		TotalProfit:      decimal.Zero,
		TotalClientShare: decimal.Zero,
		TotalOwnerShare:  decimal.Zero,
		TotalBonus:       decimal.Zero,
	}
	for _, entry := range r.s.profits {
		summary.TotalProfit = summary.TotalProfit.Add(entry.Profit)
		summary.TotalClientShare = summary.TotalClientShare.Add(entry.ClientShare)
		summary.TotalOwnerShare = summary.TotalOwnerShare.Add(entry.OwnerShare)
		summary.TotalBonus = summary.TotalBonus.Add(entry.Bonus)
	}
	return summary, nil
}

type memWithdrawalRepo struct {
	s *memStore
}

func (r *memWithdrawalRepo) CreateWithdrawal(_ context.Context, withdrawal *domain.Withdrawal) error {
	w := *withdrawal
	r.s.withdrawals[w.ID] = &w
	return nil
}

func (r *memWithdrawalRepo) UpdateWithdrawal(_ context.Context, withdrawal *domain.Withdrawal) error {
	if _, ok := r.s.withdrawals[withdrawal.ID]; !ok {
		return domain.ErrWithdrawalNotFound
	}
	w := *withdrawal
	r.s.withdrawals[w.ID] = &w
	return nil
}

func (r *memWithdrawalRepo) GetWithdrawalByID(_ context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	withdrawal, ok := r.s.withdrawals[withdrawalID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	w := *withdrawal
	return &w, nil
}

func (r *memWithdrawalRepo) GetWithdrawalByIDForUpdate(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	return r.GetWithdrawalByID(ctx, withdrawalID)
}

func (r *memWithdrawalRepo) ListWithdrawalsByClientID(_ context.Context, clientID string) ([]*domain.Withdrawal, error) {
	var out []*domain.Withdrawal
	for _, withdrawal := range r.s.withdrawals {
		if withdrawal.ClientID == clientID {
			w := *withdrawal
			out = append(out, &w)
		}
	}
	return out, nil
}

func (r *memWithdrawalRepo) ListWithdrawalsByStatus(_ context.Context, status domain.WithdrawalStatus) ([]*domain.Withdrawal, error) {
	var out []*domain.Withdrawal
	for _, withdrawal := range r.s.withdrawals {
		if withdrawal.Status == status {
			w := *withdrawal
			out = append(out, &w)
		}
	}
	return out, nil
}

func (r *memWithdrawalRepo) SumWithdrawalsByStatus(_ context.Context, status domain.WithdrawalStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, withdrawal := range r.s.withdrawals {
		if withdrawal.Status == status {
			total = total.Add(withdrawal.Amount)
		}
	}
	return total, nil
}

type memLicenseRepo struct {
	s *memStore
}

func (r *memLicenseRepo) CreateLicense(_ context.Context, license *domain.License) error {
	l := *license
	r.s.licenses = append(r.s.licenses, &l)
	return nil
}

func (r *memLicenseRepo) ListLicensesByClientID(_ context.Context, clientID string) ([]*domain.License, error) {
	var out []*domain.License
	for _, license := range r.s.licenses {
		if license.ClientID == clientID {
			l := *license
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r *memLicenseRepo) CountLicenses(_ context.Context) (int64, error) {
	return int64(len(r.s.licenses)), nil
}

type memCredentialRepo struct {
	s *memStore
}

func (r *memCredentialRepo) UpsertCredential(_ context.Context, credential *domain.PortalCredential) error {
	for username, existing := range r.s.credentials {
		if existing.ClientID == credential.ClientID {
			delete(r.s.credentials, username)
		}
	}
	c := *credential
	r.s.credentials[c.Username] = &c
	return nil
}

func (r *memCredentialRepo) GetCredentialByUsername(_ context.Context, username string) (*domain.PortalCredential, error) {
	credential, ok := r.s.credentials[username]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	c := *credential
	return &c, nil
}

func newTestLedgerUsecase(store *memStore, minWithdrawal decimal.Decimal) *DefaultLedgerUsecase {
	return NewDefaultLedgerUsecase(&memTxManager{store: store}, store, nil, nil, nil, nil, minWithdrawal)
}
