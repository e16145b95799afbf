package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/kafka"
	"github.com/shopspring/decimal"
)

// RequestWithdrawal re-validates the balance and creates a Pending request.
// No balance is touched here: Approved is a provisional commitment, only the
// Paid transition affects the ledger.
func (uc *DefaultLedgerUsecase) RequestWithdrawal(ctx context.Context, input domain.RequestWithdrawalInput) (string, error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperationDuration("request_withdrawal", time.Since(start)) }()

	if !input.Amount.IsPositive() {
		return "", domain.ErrInvalidAmount
	}
	if input.Amount.LessThan(uc.minWithdrawal) {
		return "", domain.ErrBelowMinimum
	}

	withdrawal := &domain.Withdrawal{
		ID:          uuid.New().String(),
		ClientID:    input.ClientID,
		Amount:      input.Amount,
		Method:      input.Method,
		Details:     input.Details,
		Status:      domain.WithdrawalPending,
		RequestedAt: time.Now(),
	}
	err := uc.txManager.WithinTx(ctx, func(store domain.Store) error {
		client, err := store.Clients().GetClientByIDForUpdate(ctx, input.ClientID)
		if err != nil {
			return err
		}
		if client.WithdrawableBalance.LessThan(input.Amount) {
			return domain.ErrInsufficientBalance
		}
		return store.Withdrawals().CreateWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		uc.metrics.RecordOperationError("request_withdrawal")
		return "", err
	}

	uc.metrics.RecordWithdrawalRequested(withdrawal.Amount)
	uc.audit("Withdrawal Requested",
		fmt.Sprintf("client=%s amount=%s method=%s", withdrawal.ClientID, withdrawal.Amount, withdrawal.Method),
		"Client")
	uc.notify(kafka.NotificationEvent{
		ClientID: withdrawal.ClientID,
		Category: "Withdrawal",
		Title:    "Withdrawal Request Submitted",
		Message:  fmt.Sprintf("Your withdrawal request of $%s is pending approval.", withdrawal.Amount),
		Date:     withdrawal.RequestedAt,
	})
	return withdrawal.ID, nil
}

// TransitionWithdrawal moves a request along the strictly forward table
// Pending->Approved, Pending->Rejected, Approved->Paid. A retried or
// out-of-order transition fails with ErrInvalidTransition; it is never
// silently re-applied. Paid deducts the request amount from the client's
// withdrawable balance atomically with the status write.
func (uc *DefaultLedgerUsecase) TransitionWithdrawal(ctx context.Context, input domain.TransitionWithdrawalInput) error {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperationDuration("transition_withdrawal", time.Since(start)) }()

	if input.NewStatus == domain.WithdrawalRejected && input.Note == "" {
		return domain.ErrMissingRejectionNote
	}

	var withdrawal *domain.Withdrawal
	err := uc.txManager.WithinTx(ctx, func(store domain.Store) error {
		current, err := store.Withdrawals().GetWithdrawalByIDForUpdate(ctx, input.WithdrawalID)
		if err != nil {
			return err
		}
		if !domain.IsLegalWithdrawalTransition(current.Status, input.NewStatus) {
			return fmt.Errorf("%s -> %s: %w", current.Status, input.NewStatus, domain.ErrInvalidTransition)
		}

		now := time.Now()
		current.Status = input.NewStatus
		current.ProcessedAt = &now
		current.ProcessedBy = input.Actor
		if input.NewStatus == domain.WithdrawalRejected {
			current.Note = input.Note
		}

		if input.NewStatus == domain.WithdrawalPaid {
			if _, err := store.Clients().GetClientByIDForUpdate(ctx, current.ClientID); err != nil {
				return err
			}
			if err := store.Clients().AddClientBalances(ctx, current.ClientID, decimal.Zero, current.Amount.Neg()); err != nil {
				return fmt.Errorf("deducting withdrawable balance: %w", err)
			}
		}

		if err := store.Withdrawals().UpdateWithdrawal(ctx, current); err != nil {
			return err
		}
		withdrawal = current
		return nil
	})
	if err != nil {
		uc.metrics.RecordOperationError("transition_withdrawal")
		return err
	}

	if input.NewStatus == domain.WithdrawalPaid {
		uc.invalidateSummary(ctx)
	}
	uc.metrics.RecordWithdrawalTransition(string(input.NewStatus), withdrawal.Amount)
	uc.audit(fmt.Sprintf("Withdrawal %s", input.NewStatus),
		fmt.Sprintf("withdrawal=%s client=%s amount=%s", withdrawal.ID, withdrawal.ClientID, withdrawal.Amount),
		input.Actor)
	uc.notify(withdrawalNotification(withdrawal))
	return nil
}

func withdrawalNotification(withdrawal *domain.Withdrawal) kafka.NotificationEvent {
	event := kafka.NotificationEvent{
		ClientID: withdrawal.ClientID,
		Category: "Withdrawal",
		Date:     time.Now(),
	}
	switch withdrawal.Status {
	case domain.WithdrawalApproved:
		event.Title = "Withdrawal Approved"
		event.Message = fmt.Sprintf("Your withdrawal of $%s was approved. Payment will be sent within 1-3 working days via %s.", withdrawal.Amount, withdrawal.Method)
	case domain.WithdrawalRejected:
		event.Title = "Withdrawal Rejected"
		event.Message = fmt.Sprintf("Your withdrawal of $%s was rejected. Reason: %s", withdrawal.Amount, withdrawal.Note)
	case domain.WithdrawalPaid:
		event.Title = "Withdrawal Paid"
		event.Message = fmt.Sprintf("Your withdrawal of $%s has been paid out via %s.", withdrawal.Amount, withdrawal.Method)
	}
	return event
}
