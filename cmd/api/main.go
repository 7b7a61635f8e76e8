package main

import (
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "stay_sync/internal/adapters/http_server"
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

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	promReg := observability.InitRegistry()
	observability.Serve(promReg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	hotels := app.NewHotelDirectory(repo, cache, cfg.HotelTTL)
	recon := app.NewReconciler(repo, hotels, domain.ClockFunc(time.Now))

	client, err := mews.NewClient(cfg.MewsBase, cfg.MewsKey, cfg.MewsRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Mews client")
	}

	reg := pms.NewRegistry()
	reg.Register(mews.New(client, recon, reg, domain.ClockFunc(time.Now)))

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(promReg))
	srv.MountHandlers(&server.Handlers{Registry: reg, Store: repo})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
