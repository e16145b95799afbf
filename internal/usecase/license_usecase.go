package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/kafka"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/logger"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/metrics"
)

type IssueLicenseInput struct {
	ClientID  string
	Expiry    time.Time
	Version   string
	AllowLive bool
}

type DefaultLicenseUsecase struct {
	txManager    domain.TxManager
	store        domain.Store
	publisher    kafka.NotificationPublisher
	auditLogger  logger.AuditLogger
	metrics      *metrics.LedgerMetrics
	summaryCache SummaryCache
}

func NewDefaultLicenseUsecase(
	txManager domain.TxManager,
	store domain.Store,
	publisher kafka.NotificationPublisher,
	auditLogger logger.AuditLogger,
	ledgerMetrics *metrics.LedgerMetrics,
	summaryCache SummaryCache,
) *DefaultLicenseUsecase {
	return &DefaultLicenseUsecase{
		txManager:    txManager,
		store:        store,
		publisher:    publisher,
		auditLogger:  auditLogger,
		metrics:      ledgerMetrics,
		summaryCache: summaryCache,
	}
}

// IssueLicense generates a key and obfuscated payload for the client's EA,
// appends the license record and bumps the client expiry in one
// transaction.
func (uc *DefaultLicenseUsecase) IssueLicense(ctx context.Context, input IssueLicenseInput) (*domain.License, error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperationDuration("issue_license", time.Since(start)) }()

	version := input.Version
	if version == "" {
		version = "Latest"
	}

	var license *domain.License
	err := uc.txManager.WithinTx(ctx, func(store domain.Store) error {
		client, err := store.Clients().GetClientByIDForUpdate(ctx, input.ClientID)
		if err != nil {
			return err
		}

		key, err := buildLicenseKey(client.Name, time.Now())
		if err != nil {
			return err
		}
		liveFlag := "0"
		if input.AllowLive {
			liveFlag = "1"
		}
		plain := fmt.Sprintf("%s|%s|%s|%s", client.Name, client.Accounts, input.Expiry.Format("2006-01-02"), liveFlag)

		license = &domain.License{
			ID:        uuid.New().String(),
			ClientID:  client.ID,
			Key:       key,
			EncData:   obfuscatePayload(plain, key),
			Version:   version,
			AllowLive: input.AllowLive,
			IssuedAt:  time.Now(),
			Expiry:    input.Expiry,
		}
		if err := store.Licenses().CreateLicense(ctx, license); err != nil {
			return fmt.Errorf("creating license: %w", err)
		}
		return store.Clients().UpdateClientExpiry(ctx, client.ID, input.Expiry)
	})
	if err != nil {
		uc.metrics.RecordOperationError("issue_license")
		return nil, err
	}

	if uc.summaryCache != nil {
		if err := uc.summaryCache.Invalidate(ctx); err != nil {
			slog.Error("failed to invalidate dashboard summary cache", "error", err.Error())
		}
	}
	uc.metrics.RecordLicenseIssued()
	if uc.auditLogger != nil {
		go func() {
			if err := uc.auditLogger.LogAction(context.Background(), "License Generated",
				fmt.Sprintf("client=%s version=%s live=%t expiry=%s", license.ClientID, license.Version, license.AllowLive, license.Expiry.Format("2006-01-02")),
				"Owner"); err != nil {
				slog.Error("failed to append audit log", "action", "License Generated", "error", err.Error())
			}
		}()
	}
	if uc.publisher != nil {
		go func(event kafka.NotificationEvent) {
			if err := uc.publisher.PublishNotification(event); err != nil {
				slog.Error("failed to publish notification event", "category", event.Category, "error", err.Error())
			}
		}(kafka.NotificationEvent{
			ClientID: license.ClientID,
			Category: "License",
			Title:    "New EA License Issued",
			Message:  fmt.Sprintf("A new license (%s) valid until %s is ready for download.", license.Version, license.Expiry.Format("Jan 02, 2006")),
			Date:     license.IssuedAt,
		})
	}
	return license, nil
}

func (uc *DefaultLicenseUsecase) ListLicenses(ctx context.Context, clientID string) ([]*domain.License, error) {
	return uc.store.Licenses().ListLicensesByClientID(ctx, clientID)
}

// buildLicenseKey composes KMFX_<NAME>_<MONDDYYYY>_<random>. The nanoid
// suffix keeps same-day keys for the same client distinct.
func buildLicenseKey(clientName string, issuedAt time.Time) (string, error) {
	suffixGen, err := nanoid.CustomASCII("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 8)
	if err != nil {
		return "", fmt.Errorf("creating key suffix generator: %w", err)
	}
	name := strings.ToUpper(strings.ReplaceAll(clientName, " ", "_"))
	date := strings.ToUpper(issuedAt.Format("Jan022006"))
	return fmt.Sprintf("KMFX_%s_%s_%s", name, date, suffixGen()), nil
}
