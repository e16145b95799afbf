package domain

import "context"

// PortalCredential is a client portal login. Only the bcrypt hash is ever
// stored.
type PortalCredential struct {
	ClientID     string
	Username     string
	PasswordHash string
}

type CredentialRepository interface {
	UpsertCredential(ctx context.Context, credential *PortalCredential) error
	GetCredentialByUsername(ctx context.Context, username string) (*PortalCredential, error)
}
