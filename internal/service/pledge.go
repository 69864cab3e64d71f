package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/q-lng/Christmas-Community/internal/domain"
	"github.com/q-lng/Christmas-Community/internal/event"
	"github.com/q-lng/Christmas-Community/internal/store"
	"github.com/q-lng/Christmas-Community/internal/wishlist"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

// PledgeService aggregates the acting user's pledges across every wishlist
// and flips the purchased flag on individual pledged items.
type PledgeService struct {
	store     store.DocumentStore
	wishlists *wishlist.Manager
	events    event.Publisher
	logger    *slog.Logger
}

// NewPledgeService creates a pledge service.
func NewPledgeService(s store.DocumentStore, m *wishlist.Manager, events event.Publisher, log *slog.Logger) *PledgeService {
	return &PledgeService{
		store:     s,
		wishlists: m,
		events:    events,
		logger:    log,
	}
}

// ListPledges scans every user document and collects the items the acting
// user has pledged, grouped by wishlist owner. Owners are ordered
// lexicographically; within an owner, pledges keep wishlist insertion order.
// The user's own wishlist is scanned like any other, so self-pledges show up
// too. A store failure aborts the whole listing; partial results are never
// returned.
func (s *PledgeService) ListPledges(ctx context.Context, userID string) ([]domain.PledgeGroup, error) {
	users, err := s.store.All(ctx)
	if err != nil {
		return nil, apperrors.Unavailable("pledge listing unavailable", err)
	}

	byOwner := make(map[string][]domain.Pledge)
	for _, u := range users {
		for _, item := range u.Wishlist {
			if item.PledgedBy != userID {
				continue
			}
			byOwner[u.ID] = append(byOwner[u.ID], domain.NewPledge(u.ID, item))
		}
	}

	owners := make([]string, 0, len(byOwner))
	for owner := range byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	groups := make([]domain.PledgeGroup, 0, len(owners))
	for _, owner := range owners {
		groups = append(groups, domain.PledgeGroup{Owner: owner, Pledges: byOwner[owner]})
	}

	s.logger.DebugContext(ctx, "pledges listed",
		slog.String("user_id", userID),
		slog.Int("owners", len(groups)),
	)

	return groups, nil
}

// TogglePurchased flips the purchased flag on an item the acting user has
// pledged and returns the new value. Only the pledge holder may toggle; any
// other caller gets a forbidden error regardless of who owns the wishlist.
// No other item field is touched.
func (s *PledgeService) TogglePurchased(ctx context.Context, userID, owner, itemID string) (bool, error) {
	handle, err := s.wishlists.Get(ctx, owner)
	if err != nil {
		return false, err
	}

	item, err := handle.Item(itemID)
	if err != nil {
		return false, err
	}

	if item.PledgedBy != userID {
		return false, apperrors.Forbidden(
			fmt.Sprintf("item %s on %s's wishlist is not pledged by you", itemID, owner),
		)
	}

	item.Purchased = !item.Purchased
	if err := handle.Save(ctx); err != nil {
		return false, err
	}

	s.logger.InfoContext(ctx, "purchase flag toggled",
		slog.String("owner", owner),
		slog.String("item_id", itemID),
		slog.Bool("purchased", item.Purchased),
	)

	s.events.PurchaseToggled(ctx, event.PurchaseToggledData{
		Owner:     owner,
		ItemID:    itemID,
		PledgedBy: userID,
		Purchased: item.Purchased,
	})

	return item.Purchased, nil
}
