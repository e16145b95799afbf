package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/shopspring/decimal"
)

func seedWithdrawalClient(store *memStore, balance string) {
	store.addClient(&domain.Client{
		ID:                  "client-1",
		Name:                "John",
		Tier:                domain.TierRegular,
		WithdrawableBalance: decimal.RequireFromString(balance),
	})
}

func TestRequestWithdrawal(t *testing.T) {
	store := newMemStore()
	seedWithdrawalClient(store, "500")
	uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

	id, err := uc.RequestWithdrawal(context.Background(), domain.RequestWithdrawalInput{
		ClientID: "client-1",
		Amount:   mustDecimal(t, "200"),
		Method:   "USDT",
	})
	if err != nil {
		t.Fatalf("RequestWithdrawal: %v", err)
	}

	withdrawal := store.withdrawals[id]
	if withdrawal == nil {
		t.Fatal("withdrawal not stored")
	}
	if withdrawal.Status != domain.WithdrawalPending {
		t.Errorf("status = %s, want Pending", withdrawal.Status)
	}
	// Requesting must not touch the balance.
	checkDecimal(t, "WithdrawableBalance", store.clients["client-1"].WithdrawableBalance, "500")
}

func TestRequestWithdrawalValidation(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		amount  string
		wantErr error
	}{
		{"negative amount", "500", "-5", domain.ErrInvalidAmount},
		{"zero amount", "500", "0", domain.ErrInvalidAmount},
		{"below minimum", "500", "9.99", domain.ErrBelowMinimum},
		{"exceeds balance", "100", "100.01", domain.ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			seedWithdrawalClient(store, tt.balance)
			uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

			_, err := uc.RequestWithdrawal(context.Background(), domain.RequestWithdrawalInput{
				ClientID: "client-1",
				Amount:   mustDecimal(t, tt.amount),
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if len(store.withdrawals) != 0 {
				t.Errorf("expected no stored withdrawal, got %d", len(store.withdrawals))
			}
		})
	}
}

func TestRequestWithdrawalEqualToBalance(t *testing.T) {
	store := newMemStore()
	seedWithdrawalClient(store, "100")
	uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

	if _, err := uc.RequestWithdrawal(context.Background(), domain.RequestWithdrawalInput{
		ClientID: "client-1",
		Amount:   mustDecimal(t, "100"),
	}); err != nil {
		t.Fatalf("withdrawing the full balance should pass: %v", err)
	}
}

func seedPendingWithdrawal(store *memStore, amount string) string {
	store.withdrawals["wd-1"] = &domain.Withdrawal{
		ID:       "wd-1",
		ClientID: "client-1",
		Amount:   decimal.RequireFromString(amount),
		Status:   domain.WithdrawalPending,
	}
	return "wd-1"
}

func TestTransitionWithdrawalApprove(t *testing.T) {
	store := newMemStore()
	seedWithdrawalClient(store, "500")
	id := seedPendingWithdrawal(store, "200")
	uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

	err := uc.TransitionWithdrawal(context.Background(), domain.TransitionWithdrawalInput{
		WithdrawalID: id,
		NewStatus:    domain.WithdrawalApproved,
		Actor:        "Owner",
	})
	if err != nil {
		t.Fatalf("TransitionWithdrawal: %v", err)
	}

	withdrawal := store.withdrawals[id]
	if withdrawal.Status != domain.WithdrawalApproved {
		t.Errorf("status = %s, want Approved", withdrawal.Status)
	}
	if withdrawal.ProcessedAt == nil || withdrawal.ProcessedBy != "Owner" {
		t.Error("processing metadata not recorded")
	}
	// Approval is provisional; the deduction happens at Paid.
	checkDecimal(t, "WithdrawableBalance", store.clients["client-1"].WithdrawableBalance, "500")
}

func TestTransitionWithdrawalPaidDeductsOnce(t *testing.T) {
	store := newMemStore()
	seedWithdrawalClient(store, "500")
	id := seedPendingWithdrawal(store, "200")
	uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

	ctx := context.Background()
	if err := uc.TransitionWithdrawal(ctx, domain.TransitionWithdrawalInput{
		WithdrawalID: id, NewStatus: domain.WithdrawalApproved, Actor: "Owner",
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := uc.TransitionWithdrawal(ctx, domain.TransitionWithdrawalInput{
		WithdrawalID: id, NewStatus: domain.WithdrawalPaid, Actor: "Owner",
	}); err != nil {
		t.Fatalf("pay: %v", err)
	}
	checkDecimal(t, "WithdrawableBalance", store.clients["client-1"].WithdrawableBalance, "300")

	// A retried Paid must fail loudly and must not deduct again.
	err := uc.TransitionWithdrawal(ctx, domain.TransitionWithdrawalInput{
		WithdrawalID: id, NewStatus: domain.WithdrawalPaid, Actor: "Owner",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on retry, got %v", err)
	}
	checkDecimal(t, "WithdrawableBalance", store.clients["client-1"].WithdrawableBalance, "300")
}

func TestTransitionWithdrawalRejectRequiresNote(t *testing.T) {
	store := newMemStore()
	seedWithdrawalClient(store, "500")
	id := seedPendingWithdrawal(store, "200")
	uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

	err := uc.TransitionWithdrawal(context.Background(), domain.TransitionWithdrawalInput{
		WithdrawalID: id, NewStatus: domain.WithdrawalRejected, Actor: "Owner",
	})
	if !errors.Is(err, domain.ErrMissingRejectionNote) {
		t.Fatalf("expected ErrMissingRejectionNote, got %v", err)
	}

	err = uc.TransitionWithdrawal(context.Background(), domain.TransitionWithdrawalInput{
		WithdrawalID: id, NewStatus: domain.WithdrawalRejected, Actor: "Owner", Note: "wrong wallet address",
	})
	if err != nil {
		t.Fatalf("reject with note: %v", err)
	}
	withdrawal := store.withdrawals[id]
	if withdrawal.Status != domain.WithdrawalRejected || withdrawal.Note != "wrong wallet address" {
		t.Errorf("rejection not recorded: status=%s note=%q", withdrawal.Status, withdrawal.Note)
	}
	// Rejection never touches the balance.
	checkDecimal(t, "WithdrawableBalance", store.clients["client-1"].WithdrawableBalance, "500")
}

func TestTransitionWithdrawalIllegalMoves(t *testing.T) {
	tests := []struct {
		name string
		from domain.WithdrawalStatus
		to   domain.WithdrawalStatus
	}{
		{"pending to paid", domain.WithdrawalPending, domain.WithdrawalPaid},
		{"approved to rejected", domain.WithdrawalApproved, domain.WithdrawalRejected},
		{"rejected to approved", domain.WithdrawalRejected, domain.WithdrawalApproved},
		{"paid to approved", domain.WithdrawalPaid, domain.WithdrawalApproved},
		{"approved repeat", domain.WithdrawalApproved, domain.WithdrawalApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			seedWithdrawalClient(store, "500")
			id := seedPendingWithdrawal(store, "200")
			store.withdrawals[id].Status = tt.from
			uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

			err := uc.TransitionWithdrawal(context.Background(), domain.TransitionWithdrawalInput{
				WithdrawalID: id, NewStatus: tt.to, Actor: "Owner", Note: "n/a",
			})
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
			if store.withdrawals[id].Status != tt.from {
				t.Errorf("status changed to %s on illegal move", store.withdrawals[id].Status)
			}
		})
	}
}

func TestTransitionWithdrawalUnknownID(t *testing.T) {
	store := newMemStore()
	uc := newTestLedgerUsecase(store, decimal.NewFromInt(10))

	err := uc.TransitionWithdrawal(context.Background(), domain.TransitionWithdrawalInput{
		WithdrawalID: "ghost", NewStatus: domain.WithdrawalApproved, Actor: "Owner",
	})
	if !errors.Is(err, domain.ErrWithdrawalNotFound) {
		t.Errorf("expected ErrWithdrawalNotFound, got %v", err)
	}
}
