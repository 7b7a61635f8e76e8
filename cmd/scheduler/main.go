package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stay_sync/internal/adapters/mews"
	"stay_sync/internal/adapters/observability"
	redisad "stay_sync/internal/adapters/redis"
	"stay_sync/internal/app"
	"stay_sync/internal/domain"
	"stay_sync/internal/pms"
	"stay_sync/internal/shared"
	mysqlrepo "stay_sync/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "scheduler")

	observability.Serve(observability.InitRegistry())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("base", cfg.MewsBase).
		Int("workers", cfg.PullWorkers).
		Bool("run_once", cfg.PullRunOnce).
		Msg("scheduler starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	hotels := app.NewHotelDirectory(repo, cache, cfg.HotelTTL)
	recon := app.NewReconciler(repo, hotels, domain.ClockFunc(time.Now))

	client, err := mews.NewClient(cfg.MewsBase, cfg.MewsKey, cfg.MewsRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Mews client")
	}

	reg := pms.NewRegistry()
	reg.Register(mews.New(client, recon, reg, domain.ClockFunc(time.Now)))

	if cfg.PullRunOnce {
		pullAll(ctx, reg, cfg.PullWorkers)
		log.Info().Msg("one-shot pull completed")
		return
	}

	// fire at every local midnight
	for {
		wait := untilNextMidnight(time.Now())
		log.Info().Dur("sleep", wait).Msg("waiting for next daily pull")

		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler shutting down")
			return
		case <-time.After(wait):
			pullAll(ctx, reg, cfg.PullWorkers)
		}
	}
}

// pullAll runs the daily pull on every registered adapter. Vendors are
// independent, so they fan out under a bounded semaphore; each vendor's own
// reservation loop stays sequential inside PullTomorrowsStays.
func pullAll(ctx context.Context, reg *pms.Registry, workers int) {
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, adapter := range reg.All() {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("semaphore acquire failed, stopping pull")
			break
		}

		wg.Add(1)
		go func(a pms.Adapter) {
			defer wg.Done()
			defer sem.Release(1)

			if ok := a.PullTomorrowsStays(ctx); !ok {
				log.Warn().Str("vendor", a.Name()).Msg("daily pull reported failure")
				return
			}
			log.Info().Str("vendor", a.Name()).Msg("daily pull ok")
		}(adapter)
	}

	wg.Wait()
}

func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
