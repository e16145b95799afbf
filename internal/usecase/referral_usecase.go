package usecase

import (
	"context"
	"fmt"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/shopspring/decimal"
)

// bonusRates index is ancestor level minus one. Rates apply to the recorded
// profit amount directly, not to the previous level's bonus.
var bonusRates = []decimal.Decimal{
	decimal.NewFromFloat(0.06),
	decimal.NewFromFloat(0.03),
	decimal.NewFromFloat(0.01),
}

type DefaultReferralUsecase struct {
	clients domain.ClientRepository
	profits domain.ProfitRepository
}

func NewDefaultReferralUsecase(clients domain.ClientRepository, profits domain.ProfitRepository) *DefaultReferralUsecase {
	return &DefaultReferralUsecase{
		clients: clients,
		profits: profits,
	}
}

func (uc *DefaultReferralUsecase) BonusPlan(ctx context.Context, clientID string) ([]domain.BonusShare, error) {
	if _, err := uc.clients.GetClientByID(ctx, clientID); err != nil {
		return nil, err
	}
	return planBonuses(ctx, uc.clients, clientID)
}

// planBonuses walks the referrer chain up to three levels. The walk stops at
// the first missing or non-Pioneer ancestor; levels are never skipped. The
// store does not guarantee the chain is acyclic, so a visited set turns a
// corrupted chain into a loud integrity error instead of a bounded-but-wrong
// distribution.
func planBonuses(ctx context.Context, clients domain.ClientRepository, clientID string) ([]domain.BonusShare, error) {
	visited := map[string]struct{}{clientID: {}}
	plan := make([]domain.BonusShare, 0, len(bonusRates))

	currentID := clientID
	for level := 1; level <= len(bonusRates); level++ {
		current, err := clients.GetClientByID(ctx, currentID)
		if err != nil {
			return nil, err
		}
		if current.ReferrerID == "" {
			break
		}
		ancestorID := current.ReferrerID
		if _, seen := visited[ancestorID]; seen {
			return nil, fmt.Errorf("client %s: %w", ancestorID, domain.ErrReferralCycle)
		}
		ancestor, err := clients.GetClientByID(ctx, ancestorID)
		if err != nil {
			return nil, fmt.Errorf("referrer %s of client %s: %w", ancestorID, currentID, err)
		}
		if !ancestor.IsPioneer() {
			break
		}
		plan = append(plan, domain.BonusShare{
			Level:     level,
			PioneerID: ancestorID,
			Rate:      bonusRates[level-1],
		})
		visited[ancestorID] = struct{}{}
		currentID = ancestorID
	}
	return plan, nil
}

// DownlineTree enumerates the whole downline, unbounded depth. Unlike the
// bonus walk there is no hop cap here, so cycle defense matters twice over:
// nodes already visited are skipped and the recursion always terminates.
func (uc *DefaultReferralUsecase) DownlineTree(ctx context.Context, clientID string) (*domain.DownlineNode, error) {
	root, err := uc.clients.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	visited := map[string]struct{}{root.ID: {}}
	children, err := uc.collectChildren(ctx, root.ID, visited)
	if err != nil {
		return nil, err
	}
	return &domain.DownlineNode{
		ClientID: root.ID,
		Name:     root.Name,
		Tier:     root.Tier,
		Children: children,
	}, nil
}

func (uc *DefaultReferralUsecase) collectChildren(ctx context.Context, clientID string, visited map[string]struct{}) ([]*domain.DownlineNode, error) {
	clients, err := uc.clients.ListClientsByReferrerID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	var nodes []*domain.DownlineNode
	for _, client := range clients {
		if _, seen := visited[client.ID]; seen {
			continue
		}
		visited[client.ID] = struct{}{}
		children, err := uc.collectChildren(ctx, client.ID, visited)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &domain.DownlineNode{
			ClientID: client.ID,
			Name:     client.Name,
			Tier:     client.Tier,
			Children: children,
		})
	}
	return nodes, nil
}

func (uc *DefaultReferralUsecase) DownlineCount(ctx context.Context, clientID string) (int, error) {
	tree, err := uc.DownlineTree(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return countNodes(tree.Children), nil
}

func countNodes(nodes []*domain.DownlineNode) int {
	total := len(nodes)
	for _, node := range nodes {
		total += countNodes(node.Children)
	}
	return total
}

func (uc *DefaultReferralUsecase) ReferralEarnings(ctx context.Context, clientID string) (decimal.Decimal, error) {
	if _, err := uc.clients.GetClientByID(ctx, clientID); err != nil {
		return decimal.Zero, err
	}
	return uc.profits.SumBonusByClientID(ctx, clientID)
}
