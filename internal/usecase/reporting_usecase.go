package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/shopspring/decimal"
)

// DashboardSummary mirrors the back-office landing page KPIs.
type DashboardSummary struct {
	TotalClients       int64           `json:"total_clients"`
	TotalEquity        decimal.Decimal `json:"total_equity"`
	TotalWithdrawable  decimal.Decimal `json:"total_withdrawable"`
	OwnerShareTotal    decimal.Decimal `json:"owner_share_total"`
	ReferralBonusTotal decimal.Decimal `json:"referral_bonus_total"`
	ClientShareTotal   decimal.Decimal `json:"client_share_total"`
	PaidWithdrawals    decimal.Decimal `json:"paid_withdrawals"`
	PendingWithdrawals decimal.Decimal `json:"pending_withdrawals"`
	LicensesIssued     int64           `json:"licenses_issued"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

type DefaultReportingUsecase struct {
	store        domain.Store
	summaryCache SummaryCache
}

func NewDefaultReportingUsecase(store domain.Store, summaryCache SummaryCache) *DefaultReportingUsecase {
	return &DefaultReportingUsecase{
		store:        store,
		summaryCache: summaryCache,
	}
}

// DashboardSummary serves the aggregate view, cache-first. The cache is a
// staleness bound only; writers invalidate it explicitly, so a hit is never
// older than the last balance-affecting write.
func (uc *DefaultReportingUsecase) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	if uc.summaryCache != nil {
		var cached DashboardSummary
		hit, err := uc.summaryCache.GetSummary(ctx, &cached)
		if err != nil {
			slog.Error("dashboard summary cache read failed", "error", err.Error())
		} else if hit {
			return &cached, nil
		}
	}

	summary, err := uc.computeSummary(ctx)
	if err != nil {
		return nil, err
	}
	if uc.summaryCache != nil {
		if err := uc.summaryCache.SetSummary(ctx, summary); err != nil {
			slog.Error("dashboard summary cache write failed", "error", err.Error())
		}
	}
	return summary, nil
}

func (uc *DefaultReportingUsecase) computeSummary(ctx context.Context) (*DashboardSummary, error) {
	clientCount, err := uc.store.Clients().CountClients(ctx)
	if err != nil {
		return nil, err
	}
	balances, err := uc.store.Clients().SumClientBalances(ctx)
	if err != nil {
		return nil, err
	}
	shares, err := uc.store.Profits().SummarizeShares(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := uc.store.Withdrawals().SumWithdrawalsByStatus(ctx, domain.WithdrawalPaid)
	if err != nil {
		return nil, err
	}
	pending, err := uc.store.Withdrawals().SumWithdrawalsByStatus(ctx, domain.WithdrawalPending)
	if err != nil {
		return nil, err
	}
	licenseCount, err := uc.store.Licenses().CountLicenses(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalClients:       clientCount,
		TotalEquity:        balances.TotalEquity,
		TotalWithdrawable:  balances.TotalWithdrawable,
		OwnerShareTotal:    shares.TotalOwnerShare,
		ReferralBonusTotal: shares.TotalBonus,
		ClientShareTotal:   shares.TotalClientShare,
		PaidWithdrawals:    paid,
		PendingWithdrawals: pending,
		LicensesIssued:     licenseCount,
		GeneratedAt:        time.Now(),
	}, nil
}
