package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"sweetshop/api/internal/models"
)

// EventStream is the redis stream carrying stock movement events.
const EventStream = "inventory:events"

// StockStore mutates the stock counter.
type StockStore interface {
	AddStock(ctx context.Context, id string, quantity int) (models.Sweet, error)
}

// LedgerStore runs the purchase transaction: conditional decrement plus
// ledger append, all or nothing.
type LedgerStore interface {
	Purchase(ctx context.Context, userID string, sweetID string, quantity int) (models.Purchase, int, error)
	ListByUser(ctx context.Context, userID string) ([]models.Purchase, error)
}

type InventoryService struct {
	sweets StockStore
	ledger LedgerStore
	events *redis.Client
	log    zerolog.Logger
}

func NewInventoryService(sweets StockStore, ledger LedgerStore, events *redis.Client, log zerolog.Logger) *InventoryService {
	return &InventoryService{
		sweets: sweets,
		ledger: ledger,
		events: events,
		log:    log,
	}
}

type PurchaseResult struct {
	Purchase  models.Purchase
	Remaining int
}

func (s *InventoryService) Purchase(ctx context.Context, userID string, sweetID string, quantity int) (PurchaseResult, error) {
	if quantity < 1 {
		return PurchaseResult{}, &ValidationError{Message: "Quantity must be at least 1"}
	}

	purchase, remaining, err := s.ledger.Purchase(ctx, userID, sweetID, quantity)
	if err != nil {
		return PurchaseResult{}, err
	}

	s.publish(ctx, map[string]any{
		"type":      "purchase",
		"sweet_id":  sweetID,
		"user_id":   userID,
		"quantity":  quantity,
		"remaining": remaining,
	})

	return PurchaseResult{Purchase: purchase, Remaining: remaining}, nil
}

func (s *InventoryService) Restock(ctx context.Context, sweetID string, quantity int) (models.Sweet, error) {
	if quantity < 1 {
		return models.Sweet{}, &ValidationError{Message: "Quantity must be at least 1"}
	}

	sweet, err := s.sweets.AddStock(ctx, sweetID, quantity)
	if err != nil {
		return models.Sweet{}, err
	}

	s.publish(ctx, map[string]any{
		"type":      "restock",
		"sweet_id":  sweetID,
		"quantity":  quantity,
		"new_total": sweet.Quantity,
	})

	return sweet, nil
}

func (s *InventoryService) History(ctx context.Context, userID string) ([]models.Purchase, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// publish is best-effort telemetry; a broken stream never fails the
// request that already committed.
func (s *InventoryService) publish(ctx context.Context, payload map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.XAdd(ctx, &redis.XAddArgs{
		Stream: EventStream,
		Values: payload,
	}).Err(); err != nil {
		s.log.Warn().Err(err).Msg("publish inventory event failed")
	}
}
