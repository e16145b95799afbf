package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
)

func newClientFixture() (*memStore, *DefaultClientUsecase) {
	store := newMemStore()
	uc := NewDefaultClientUsecase(&memClientRepo{s: store}, &memCredentialRepo{s: store}, nil)
	return store, uc
}

func TestDeriveReferralCode(t *testing.T) {
	_, uc := newClientFixture()

	tests := []struct {
		name     string
		clientID string
		want     string
	}{
		{"John Doe", "abc123-rest-of-uuid", "johndoeabc123"},
		{"UPPER case", "ff00-x", "uppercaseff00"},
		{"O'Brien-Smith Jr.", "9e1-x", "obriensmithjr9e1"},
	}
	for _, tt := range tests {
		got, err := uc.deriveReferralCode(context.Background(), tt.name, tt.clientID)
		if err != nil {
			t.Fatalf("deriveReferralCode(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("deriveReferralCode(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeriveReferralCodeCollision(t *testing.T) {
	store, uc := newClientFixture()
	store.addClient(&domain.Client{ID: "x1", Name: "Taken", ReferralCode: "johndoeabc123"})
	store.addClient(&domain.Client{ID: "x2", Name: "Taken2", ReferralCode: "johndoeabc1232"})

	got, err := uc.deriveReferralCode(context.Background(), "John Doe", "abc123-rest")
	if err != nil {
		t.Fatalf("deriveReferralCode: %v", err)
	}
	if got != "johndoeabc1233" {
		t.Errorf("deriveReferralCode = %q, want johndoeabc1233", got)
	}
}

func TestCreateClient(t *testing.T) {
	store, uc := newClientFixture()
	store.addClient(&domain.Client{ID: "ref-1", Name: "Ref", Tier: domain.TierPioneer, ReferralCode: "refcode"})

	client, err := uc.CreateClient(context.Background(), CreateClientInput{
		Name:                 "  John Doe  ",
		StartBalance:         mustDecimal(t, "2500"),
		ReferrerReferralCode: "refcode",
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}

	if client.Name != "John Doe" {
		t.Errorf("Name = %q, want trimmed", client.Name)
	}
	if client.Tier != domain.TierRegular {
		t.Errorf("Tier = %s, want default Regular", client.Tier)
	}
	if client.ReferrerID != "ref-1" {
		t.Errorf("ReferrerID = %q, want ref-1", client.ReferrerID)
	}
	checkDecimal(t, "CurrentEquity", client.CurrentEquity, "2500")
	checkDecimal(t, "WithdrawableBalance", client.WithdrawableBalance, "0")
	if !strings.HasPrefix(client.ReferralCode, "johndoe") {
		t.Errorf("ReferralCode = %q, want johndoe prefix", client.ReferralCode)
	}
	if store.clients[client.ID] == nil {
		t.Error("client not persisted")
	}
}

func TestCreateClientValidation(t *testing.T) {
	_, uc := newClientFixture()

	if _, err := uc.CreateClient(context.Background(), CreateClientInput{Name: "   "}); err == nil {
		t.Error("expected error for blank name")
	}

	_, err := uc.CreateClient(context.Background(), CreateClientInput{
		Name:                 "John",
		ReferrerReferralCode: "nope",
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound for unknown referrer code, got %v", err)
	}
}

func TestUpdateClientRenameRegeneratesCode(t *testing.T) {
	store, uc := newClientFixture()
	store.addClient(&domain.Client{
		ID: "c-1", Name: "John Doe", Tier: domain.TierRegular, ReferralCode: "johndoec",
	})

	updated, err := uc.UpdateClient(context.Background(), UpdateClientInput{
		ClientID: "c-1",
		Name:     "Jane Roe",
	})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if !strings.HasPrefix(updated.ReferralCode, "janeroe") {
		t.Errorf("ReferralCode = %q, want janeroe prefix after rename", updated.ReferralCode)
	}

	// No rename, no regeneration.
	updated, err = uc.UpdateClient(context.Background(), UpdateClientInput{
		ClientID: "c-1",
		Name:     "Jane Roe",
		Notes:    "vip",
	})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if !strings.HasPrefix(updated.ReferralCode, "janeroe") {
		t.Errorf("ReferralCode = %q changed without a rename", updated.ReferralCode)
	}
	if updated.Notes != "vip" {
		t.Errorf("Notes = %q, want vip", updated.Notes)
	}
}

func TestPortalCredentials(t *testing.T) {
	store, uc := newClientFixture()
	store.addClient(&domain.Client{ID: "c-1", Name: "John", Tier: domain.TierRegular})

	if err := uc.SetPortalCredentials(context.Background(), "c-1", "john", "hunter22"); err != nil {
		t.Fatalf("SetPortalCredentials: %v", err)
	}
	cred := store.credentials["john"]
	if cred == nil {
		t.Fatal("credential not stored")
	}
	if cred.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext")
	}

	clientID, err := uc.Authenticate(context.Background(), "john", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if clientID != "c-1" {
		t.Errorf("clientID = %q, want c-1", clientID)
	}

	if _, err := uc.Authenticate(context.Background(), "john", "wrong"); err == nil {
		t.Error("expected error for wrong password")
	}
	if _, err := uc.Authenticate(context.Background(), "ghost", "hunter22"); err == nil {
		t.Error("expected error for unknown username")
	}
}

func TestSetPortalCredentialsUnknownClient(t *testing.T) {
	_, uc := newClientFixture()

	err := uc.SetPortalCredentials(context.Background(), "ghost", "user", "pass")
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}
