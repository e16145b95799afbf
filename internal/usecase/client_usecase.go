package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type CreateClientInput struct {
	Name                 string
	Tier                 domain.ClientTier
	Accounts             string
	MobileNumber         string
	Address              string
	StartBalance         decimal.Decimal
	ReferrerReferralCode string
	Expiry               *time.Time
	Notes                string
}

type UpdateClientInput struct {
	ClientID             string
	Name                 string
	Tier                 domain.ClientTier
	Accounts             string
	MobileNumber         string
	Address              string
	ReferrerReferralCode string
	Expiry               *time.Time
	Notes                string
}

type DefaultClientUsecase struct {
	clients     domain.ClientRepository
	credentials domain.CredentialRepository
	auditLogger logger.AuditLogger
}

func NewDefaultClientUsecase(
	clients domain.ClientRepository,
	credentials domain.CredentialRepository,
	auditLogger logger.AuditLogger,
) *DefaultClientUsecase {
	return &DefaultClientUsecase{
		clients:     clients,
		credentials: credentials,
		auditLogger: auditLogger,
	}
}

// CreateClient registers a client and derives a unique referral code from
// the normalized name plus the identifier. A numeric suffix resolves
// collisions, matching codes already handed out.
func (uc *DefaultClientUsecase) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("client name is required")
	}
	tier := input.Tier
	if tier == "" {
		tier = domain.TierRegular
	}

	var referrerID string
	if input.ReferrerReferralCode != "" {
		referrer, err := uc.clients.GetClientByReferralCode(ctx, input.ReferrerReferralCode)
		if err != nil {
			return nil, fmt.Errorf("resolving referrer code %q: %w", input.ReferrerReferralCode, err)
		}
		referrerID = referrer.ID
	}

	client := &domain.Client{
		ID:                  uuid.New().String(),
		Name:                strings.TrimSpace(input.Name),
		Tier:                tier,
		Accounts:            input.Accounts,
		MobileNumber:        input.MobileNumber,
		Address:             input.Address,
		StartBalance:        input.StartBalance,
		CurrentEquity:       input.StartBalance,
		WithdrawableBalance: decimal.Zero,
		ReferrerID:          referrerID,
		Expiry:              input.Expiry,
		Notes:               input.Notes,
	}
	code, err := uc.deriveReferralCode(ctx, client.Name, client.ID)
	if err != nil {
		return nil, err
	}
	client.ReferralCode = code

	if err := uc.clients.CreateClient(ctx, client); err != nil {
		return nil, err
	}
	uc.auditBestEffort("Client Added", fmt.Sprintf("client=%s name=%s tier=%s referred_by=%s", client.ID, client.Name, client.Tier, referrerID))
	return client, nil
}

// UpdateClient mutates profile fields. A name change regenerates the
// referral code; the code is otherwise stable for the client's lifetime.
func (uc *DefaultClientUsecase) UpdateClient(ctx context.Context, input UpdateClientInput) (*domain.Client, error) {
	client, err := uc.clients.GetClientByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	newName := strings.TrimSpace(input.Name)
	nameChanged := newName != "" && newName != client.Name
	if nameChanged {
		client.Name = newName
	}
	if input.Tier != "" {
		client.Tier = input.Tier
	}
	client.Accounts = input.Accounts
	client.MobileNumber = input.MobileNumber
	client.Address = input.Address
	client.Notes = input.Notes
	if input.Expiry != nil {
		client.Expiry = input.Expiry
	}
	if input.ReferrerReferralCode != "" {
		referrer, err := uc.clients.GetClientByReferralCode(ctx, input.ReferrerReferralCode)
		if err != nil {
			return nil, fmt.Errorf("resolving referrer code %q: %w", input.ReferrerReferralCode, err)
		}
		client.ReferrerID = referrer.ID
	}
	if nameChanged {
		code, err := uc.deriveReferralCode(ctx, client.Name, client.ID)
		if err != nil {
			return nil, err
		}
		client.ReferralCode = code
	}

	if err := uc.clients.UpdateClient(ctx, client); err != nil {
		return nil, err
	}
	uc.auditBestEffort("Client Updated", fmt.Sprintf("client=%s name=%s tier=%s", client.ID, client.Name, client.Tier))
	return client, nil
}

func (uc *DefaultClientUsecase) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	return uc.clients.GetClientByID(ctx, clientID)
}

func (uc *DefaultClientUsecase) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return uc.clients.ListClients(ctx)
}

// deriveReferralCode builds <normalized-name><id-prefix> and appends the
// smallest free numeric suffix when that base is already taken.
func (uc *DefaultClientUsecase) deriveReferralCode(ctx context.Context, name, clientID string) (string, error) {
	var normalized strings.Builder
	for _, r := range strings.ToLower(strings.ReplaceAll(name, " ", "")) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			normalized.WriteRune(r)
		}
	}
	idPrefix := clientID
	if i := strings.IndexByte(clientID, '-'); i > 0 {
		idPrefix = clientID[:i]
	}
	base := normalized.String() + idPrefix

	existing, err := uc.clients.ListReferralCodesByPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	taken := make(map[int]struct{}, len(existing))
	baseTaken := false
	for _, code := range existing {
		suffix := strings.TrimPrefix(code, base)
		if suffix == "" {
			baseTaken = true
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil {
			taken[n] = struct{}{}
		}
	}
	if !baseTaken {
		return base, nil
	}
	for counter := 2; ; counter++ {
		if _, ok := taken[counter]; !ok {
			return base + strconv.Itoa(counter), nil
		}
	}
}

// SetPortalCredentials stores a bcrypt hash for the client portal login.
func (uc *DefaultClientUsecase) SetPortalCredentials(ctx context.Context, clientID, username, password string) error {
	if _, err := uc.clients.GetClientByID(ctx, clientID); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := uc.credentials.UpsertCredential(ctx, &domain.PortalCredential{
		ClientID:     clientID,
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		return err
	}
	uc.auditBestEffort("Client Login Set", fmt.Sprintf("client=%s username=%s", clientID, username))
	return nil
}

// Authenticate returns the client ID on a matching username/password pair.
func (uc *DefaultClientUsecase) Authenticate(ctx context.Context, username, password string) (string, error) {
	credential, err := uc.credentials.GetCredentialByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	return credential.ClientID, nil
}

func (uc *DefaultClientUsecase) auditBestEffort(action, details string) {
	if uc.auditLogger == nil {
		return
	}
	go func() {
		if err := uc.auditLogger.LogAction(context.Background(), action, details, "Owner"); err != nil {
			slog.Error("failed to append audit log", "action", action, "error", err.Error())
		}
	}()
}
