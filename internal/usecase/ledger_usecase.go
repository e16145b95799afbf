package usecase

import (
	"context"
	"log/slog"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/kafka"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/logger"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
)

// SummaryCache is the dashboard aggregate cache. It must be invalidated
// right after any balance-affecting write; expiry alone is not enough for
// correctness-sensitive numbers.
type SummaryCache interface {
	GetSummary(ctx context.Context, dest any) (bool, error)
	SetSummary(ctx context.Context, value any) error
	Invalidate(ctx context.Context) error
}

type DefaultLedgerUsecase struct {
	txManager    domain.TxManager
	store        domain.Store
	publisher    kafka.NotificationPublisher
	auditLogger  logger.AuditLogger
	metrics      *metrics.LedgerMetrics
	summaryCache SummaryCache
	minWithdrawal decimal.Decimal
}

func NewDefaultLedgerUsecase(
	txManager domain.TxManager,
	store domain.Store,
	publisher kafka.NotificationPublisher,
	auditLogger logger.AuditLogger,
	ledgerMetrics *metrics.LedgerMetrics,
	summaryCache SummaryCache,
	minWithdrawal decimal.Decimal,
) *DefaultLedgerUsecase {
	return &DefaultLedgerUsecase{
		txManager:     txManager,
		store:         store,
		publisher:     publisher,
		auditLogger:   auditLogger,
		metrics:       ledgerMetrics,
		summaryCache:  summaryCache,
		minWithdrawal: minWithdrawal,
	}
}

func (uc *DefaultLedgerUsecase) GetProfitHistory(ctx context.Context, clientID string) ([]*domain.ProfitEntry, error) {
	return uc.store.Profits().ListProfitEntriesByClientID(ctx, clientID)
}

func (uc *DefaultLedgerUsecase) GetWithdrawalHistory(ctx context.Context, clientID string) ([]*domain.Withdrawal, error) {
	return uc.store.Withdrawals().ListWithdrawalsByClientID(ctx, clientID)
}

func (uc *DefaultLedgerUsecase) ListWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus) ([]*domain.Withdrawal, error) {
	return uc.store.Withdrawals().ListWithdrawalsByStatus(ctx, status)
}

// notify publishes a client notification best-effort: failures are logged
// and swallowed so they never block a financial operation.
func (uc *DefaultLedgerUsecase) notify(event kafka.NotificationEvent) {
	if uc.publisher == nil {
		return
	}
	go func(event kafka.NotificationEvent) {
		if err := uc.publisher.PublishNotification(event); err != nil {
			slog.Error("failed to publish notification event", "category", event.Category, "error", err.Error())
		}
	}(event)
}

// audit appends to the audit log best-effort, same contract as notify.
func (uc *DefaultLedgerUsecase) audit(action, details, actor string) {
	if uc.auditLogger == nil {
		return
	}
	go func() {
		if err := uc.auditLogger.LogAction(context.Background(), action, details, actor); err != nil {
			slog.Error("failed to append audit log", "action", action, "error", err.Error())
		}
	}()
}

func (uc *DefaultLedgerUsecase) invalidateSummary(ctx context.Context) {
	if uc.summaryCache == nil {
		return
	}
	if err := uc.summaryCache.Invalidate(ctx); err != nil {
		slog.Error("failed to invalidate dashboard summary cache", "error", err.Error())
	}
}
