package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"sweetshop/api/internal/models"
	"sweetshop/api/internal/service"
)

// LowStockLister is the catalog slice the sweep needs.
type LowStockLister interface {
	ListBelowQuantity(ctx context.Context, threshold int) ([]models.Sweet, error)
}

type Scheduler struct {
	cron      *cron.Cron
	sweets    LowStockLister
	queue     *redis.Client
	threshold int
	log       zerolog.Logger
}

func NewScheduler(sweets LowStockLister, queue *redis.Client, threshold int, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:      c,
		sweets:    sweets,
		queue:     queue,
		threshold: threshold,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 6 * * *", s.lowStockSweep); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for any running sweep to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

// lowStockSweep flags items running out so restocking can happen before
// purchases start bouncing.
func (s *Scheduler) lowStockSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sweets, err := s.sweets.ListBelowQuantity(ctx, s.threshold)
	if err != nil {
		s.log.Error().Err(err).Msg("low stock sweep failed")
		return
	}

	for _, sweet := range sweets {
		if err := s.queue.XAdd(ctx, &redis.XAddArgs{
			Stream: service.EventStream,
			Values: map[string]any{
				"type":     "low_stock",
				"sweet_id": sweet.ID,
				"name":     sweet.Name,
				"quantity": sweet.Quantity,
			},
		}).Err(); err != nil {
			s.log.Error().Err(err).Str("sweet_id", sweet.ID).Msg("enqueue low stock event failed")
		}
	}

	s.log.Info().Int("count", len(sweets)).Msg("low stock sweep completed")
}
