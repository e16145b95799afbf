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

var (
	pioneerShareRate = decimal.NewFromFloat(0.75)
	regularShareRate = decimal.NewFromFloat(0.65)
)

// RecordProfit applies one profit (or loss) event: the primary ledger entry
// with the tier-based split, up to three referral-bonus entries for ancestor
// Pioneers, and the cached balance updates. Everything commits as a single
// transaction; the subject row and every receiving Pioneer row are locked
// for the duration so concurrent recordings cannot lose balance updates.
func (uc *DefaultLedgerUsecase) RecordProfit(ctx context.Context, input domain.RecordProfitInput) (*domain.ProfitDistribution, error) {
	start := time.Now()
	defer func() { uc.metrics.ObserveOperationDuration("record_profit", time.Since(start)) }()

	if input.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	var dist *domain.ProfitDistribution
	err := uc.txManager.WithinTx(ctx, func(store domain.Store) error {
		client, err := store.Clients().GetClientByIDForUpdate(ctx, input.ClientID)
		if err != nil {
			return err
		}

		// Losses are not split: the whole negative amount lands on the
		// owner and no bonuses are paid.
		clientShare := decimal.Zero
		if input.Amount.IsPositive() {
			rate := regularShareRate
			if client.IsPioneer() {
				rate = pioneerShareRate
			}
			clientShare = input.Amount.Mul(rate).Round(2)
		}
		ownerShare := input.Amount.Sub(clientShare)

		var payouts []domain.BonusPayout
		if input.Amount.IsPositive() && client.Tier == domain.TierRegular {
			plan, err := planBonuses(ctx, store.Clients(), client.ID)
			if err != nil {
				return err
			}
			for _, share := range plan {
				if _, err := store.Clients().GetClientByIDForUpdate(ctx, share.PioneerID); err != nil {
					return fmt.Errorf("locking pioneer %s: %w", share.PioneerID, err)
				}
				bonus := input.Amount.Mul(share.Rate).Round(2)
				entry := &domain.ProfitEntry{
					ID:       uuid.New().String(),
					ClientID: share.PioneerID,
					Bonus:    bonus,
					Date:     date,
				}
				if err := store.Profits().CreateProfitEntry(ctx, entry); err != nil {
					return fmt.Errorf("creating bonus entry: %w", err)
				}
				if err := store.Clients().AddClientBalances(ctx, share.PioneerID, decimal.Zero, bonus); err != nil {
					return fmt.Errorf("crediting pioneer %s: %w", share.PioneerID, err)
				}
				ownerShare = ownerShare.Sub(bonus)
				payouts = append(payouts, domain.BonusPayout{
					Level:     share.Level,
					PioneerID: share.PioneerID,
					Amount:    bonus,
				})
			}
		}

		primary := &domain.ProfitEntry{
			ID:          uuid.New().String(),
			ClientID:    client.ID,
			Profit:      input.Amount,
			ClientShare: clientShare,
			OwnerShare:  ownerShare,
			Date:        date,
		}
		if err := store.Profits().CreateProfitEntry(ctx, primary); err != nil {
			return fmt.Errorf("creating profit entry: %w", err)
		}
		if err := store.Clients().AddClientBalances(ctx, client.ID, input.Amount, clientShare); err != nil {
			return fmt.Errorf("updating client balances: %w", err)
		}

		dist = &domain.ProfitDistribution{
			EntryID:     primary.ID,
			ClientID:    client.ID,
			Amount:      input.Amount,
			ClientShare: clientShare,
			OwnerShare:  ownerShare,
			Bonuses:     payouts,
		}
		return nil
	})
	if err != nil {
		uc.metrics.RecordOperationError("record_profit")
		return nil, err
	}

	uc.invalidateSummary(ctx)
	uc.metrics.RecordProfitDistribution(dist)
	uc.audit("Profit Recorded",
		fmt.Sprintf("client=%s amount=%s client_share=%s owner_share=%s bonuses=%d",
			dist.ClientID, dist.Amount, dist.ClientShare, dist.OwnerShare, len(dist.Bonuses)),
		"Owner")
	uc.notify(kafka.NotificationEvent{
		ClientID: dist.ClientID,
		Category: "Profit",
		Title:    "Profit Recorded",
		Message:  fmt.Sprintf("A profit of $%s was recorded. Your share: $%s.", dist.Amount, dist.ClientShare),
		Date:     date,
	})
	for _, payout := range dist.Bonuses {
		uc.notify(kafka.NotificationEvent{
			ClientID: payout.PioneerID,
			Category: "Profit",
			Title:    "Referral Bonus Earned",
			Message:  fmt.Sprintf("A level %d referral bonus of $%s was added to your withdrawable balance.", payout.Level, payout.Amount),
			Date:     date,
		})
	}
	return dist, nil
}
