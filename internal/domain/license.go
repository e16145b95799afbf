package domain

import (
	"context"
	"time"
)

// License is an append-only record of an issued EA license.
type License struct {
	ID        string
	ClientID  string
	Key       string
	EncData   string
	Version   string
	AllowLive bool
	IssuedAt  time.Time
	Expiry    time.Time
	CreatedAt time.Time
}

type LicenseRepository interface {
	CreateLicense(ctx context.Context, license *License) error
	ListLicensesByClientID(ctx context.Context, clientID string) ([]*License, error)
	CountLicenses(ctx context.Context) (int64, error)
}
