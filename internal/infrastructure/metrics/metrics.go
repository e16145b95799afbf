package metrics

import (
	"time"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// LedgerMetrics covers the financial operations of the back office.
type LedgerMetrics struct {
	ProfitsRecordedTotal     *prometheus.CounterVec
	ProfitAmountTotal        prometheus.Counter
	ClientShareAmountTotal   prometheus.Counter
	OwnerShareAmountTotal    prometheus.Counter
	ReferralBonusAmountTotal prometheus.Counter
	ReferralBonusCountTotal  *prometheus.CounterVec

	WithdrawalsRequestedTotal  prometheus.Counter
	WithdrawalAmountRequested  prometheus.Counter
	WithdrawalTransitionsTotal *prometheus.CounterVec
	WithdrawalAmountPaidTotal  prometheus.Counter

	LicensesIssuedTotal prometheus.Counter

	OperationErrorsTotal     *prometheus.CounterVec
	OperationDurationSeconds *prometheus.HistogramVec
}

func NewLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		ProfitsRecordedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profits_recorded_total",
				Help: "Number of recorded profit events",
			},
			[]string{"direction"},
		),
		ProfitAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "profit_amount_total",
				Help: "Absolute sum of recorded profit amounts",
			},
		),
		ClientShareAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "client_share_amount_total",
				Help: "Sum of client shares paid out",
			},
		),
		OwnerShareAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "owner_share_amount_total",
				Help: "Sum of owner shares after bonus deductions",
			},
		),
		ReferralBonusAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "referral_bonus_amount_total",
				Help: "Sum of referral bonuses distributed",
			},
		),
		ReferralBonusCountTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "referral_bonus_count_total",
				Help: "Number of referral bonuses by ancestor level",
			},
			[]string{"level"},
		),
		WithdrawalsRequestedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "withdrawals_requested_total",
				Help: "Number of withdrawal requests created",
			},
		),
		WithdrawalAmountRequested: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "withdrawal_amount_requested_total",
				Help: "Sum of requested withdrawal amounts",
			},
		),
		WithdrawalTransitionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "withdrawal_transitions_total",
				Help: "Number of withdrawal status transitions",
			},
			[]string{"to_status"},
		),
		WithdrawalAmountPaidTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "withdrawal_amount_paid_total",
				Help: "Sum of paid-out withdrawal amounts",
			},
		),
		LicensesIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "licenses_issued_total",
				Help: "Number of EA licenses issued",
			},
		),
		OperationErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operation_errors_total",
				Help: "Number of failed ledger operations",
			},
			[]string{"operation"},
		),
		OperationDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_seconds",
				Help:    "Duration of ledger operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (m *LedgerMetrics) RecordProfitDistribution(dist *domain.ProfitDistribution) {
	if m == nil || dist == nil {
		return
	}
	direction := "profit"
	if dist.Amount.IsNegative() {
		direction = "loss"
	}
	m.ProfitsRecordedTotal.WithLabelValues(direction).Inc()
	m.ProfitAmountTotal.Add(dist.Amount.Abs().InexactFloat64())
	m.ClientShareAmountTotal.Add(dist.ClientShare.InexactFloat64())
	m.OwnerShareAmountTotal.Add(dist.OwnerShare.InexactFloat64())
	for _, bonus := range dist.Bonuses {
		m.ReferralBonusAmountTotal.Add(bonus.Amount.InexactFloat64())
		m.ReferralBonusCountTotal.WithLabelValues(levelLabel(bonus.Level)).Inc()
	}
}

func (m *LedgerMetrics) RecordWithdrawalRequested(amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.WithdrawalsRequestedTotal.Inc()
	m.WithdrawalAmountRequested.Add(amount.InexactFloat64())
}

func (m *LedgerMetrics) RecordWithdrawalTransition(toStatus string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.WithdrawalTransitionsTotal.WithLabelValues(toStatus).Inc()
	if toStatus == string(domain.WithdrawalPaid) {
		m.WithdrawalAmountPaidTotal.Add(amount.InexactFloat64())
	}
}

func (m *LedgerMetrics) RecordLicenseIssued() {
	if m == nil {
		return
	}
	m.LicensesIssuedTotal.Inc()
}

func (m *LedgerMetrics) ObserveOperationDuration(operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.OperationDurationSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *LedgerMetrics) RecordOperationError(operation string) {
	if m == nil {
		return
	}
	m.OperationErrorsTotal.WithLabelValues(operation).Inc()
}

func levelLabel(level int) string {
	switch level {
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return "3"
	default:
		return "other"
	}
}
