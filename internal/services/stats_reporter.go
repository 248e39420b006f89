package services

import (
	"context"
	"strconv"

	"auction-ledger/internal/domain"
	"auction-ledger/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
)

const statsCountKey = "ledger:stats:listing_count"

// StatsReporter periodically logs the ledger size and checkpoints it to
// redis for dashboards. Only the elected leader reports, so a scaled-out
// deployment produces one checkpoint stream.
type StatsReporter struct {
	ledger         *LedgerService
	leaderElection domain.LeaderElection
	client         *redis.Client
	instanceID     string
	cron           *cron.Cron
	log            logger.Logger
}

func NewStatsReporter(
	ledger *LedgerService,
	leaderElection domain.LeaderElection,
	client *redis.Client,
	instanceID string,
	log logger.Logger,
) *StatsReporter {
	return &StatsReporter{
		ledger:         ledger,
		leaderElection: leaderElection,
		client:         client,
		instanceID:     instanceID,
		cron:           cron.New(cron.WithSeconds()),
		log:            log,
	}
}

func (r *StatsReporter) Start(ctx context.Context) error {
	r.log.Info("Starting stats reporter")

	_, err := r.cron.AddFunc("@every 1m", func() {
		r.report(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

func (r *StatsReporter) Stop() error {
	r.log.Info("Stopping stats reporter")
	r.cron.Stop()
	return nil
}

func (r *StatsReporter) report(ctx context.Context) {
	isLeader, err := r.leaderElection.IsLeader(ctx, r.instanceID)
	if err != nil || !isLeader {
		return
	}

	count, err := r.ledger.CountListings(ctx)
	if err != nil {
		r.log.Error("Failed to count listings", "error", err)
		return
	}

	if err := r.client.Set(ctx, statsCountKey, strconv.FormatUint(count, 10), 0).Err(); err != nil {
		r.log.Error("Failed to checkpoint listing count", "error", err)
	}

	r.log.Info("Ledger stats", "listing_count", count)
}
