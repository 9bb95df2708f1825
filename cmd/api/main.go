package main

import (
	"context"
	"log"

	"github.com/fundchain/campaign-engine/config"
	"github.com/fundchain/campaign-engine/internal/bootstrap"
	"github.com/fundchain/campaign-engine/internal/campaigns/engine"
	"github.com/fundchain/campaign-engine/internal/campaigns/events"
	"github.com/fundchain/campaign-engine/internal/campaigns/payout"
	"github.com/fundchain/campaign-engine/internal/campaigns/store"
	"github.com/fundchain/campaign-engine/internal/db"
	"github.com/fundchain/campaign-engine/internal/redisconn"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	var (
		campaignStore store.Store
		pool          *pgxpool.Pool
	)
	switch cfg.Store.Driver {
	case "postgres":
		database, err := db.Open(ctx, cfg.Store.DSN, cfg.Store.MaxConns, cfg.Store.MinConns)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer database.Close()
		pool = database.Pool

		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		campaignStore = pg
	case "memory":
		log.Println("using in-memory campaign store (data is not durable)")
		campaignStore = store.NewMemory()
	}

	var redisClient *redis.Client
	var sinks []events.Sink
	if cfg.Redis.Addr != "" {
		redisClient, err = redisconn.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("open redis: %v", err)
		}
		defer redisClient.Close()
		sinks = append(sinks, events.NewRedisPublisher(redisClient))
	}

	if cfg.Store.ArchiveDSN != "" {
		archiveDB, err := events.OpenArchive(cfg.Store.ArchiveDSN)
		if err != nil {
			log.Fatalf("open event archive: %v", err)
		}
		defer archiveDB.Close()

		archive := events.NewArchiveRepository(archiveDB)
		if err := archive.Migrate(ctx); err != nil {
			log.Fatalf("migrate event archive: %v", err)
		}
		sinks = append(sinks, archive)
	}

	var transferer engine.Transferer = payout.Noop{}
	if cfg.Payout.URL != "" {
		transferer = payout.NewClient(cfg.Payout.URL)
	} else {
		log.Println("PAYOUT_URL not set, withdrawals use the no-op transferer")
	}

	eng := engine.New(campaignStore, transferer, events.NewEmitter(campaignStore, sinks...))

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "campaign-engine",
		Version:        cfg.App.Version,
		Engine:         eng,
		DB:             pool,
		Redis:          redisClient,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	log.Printf("campaign engine listening on :%s (store=%s)", cfg.Server.Port, cfg.Store.Driver)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
