package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fundchain/campaign-engine/config"
	"github.com/fundchain/campaign-engine/internal/campaigns/store"
	"github.com/fundchain/campaign-engine/internal/campaigns/watcher"
	"github.com/fundchain/campaign-engine/internal/db"
	"github.com/fundchain/campaign-engine/internal/redisconn"
)

// The worker runs the deadline watcher: it needs the shared Postgres
// store and Redis, and announces campaign expiries to front ends.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Store.Driver != "postgres" {
		log.Fatal("worker requires STORE_DRIVER=postgres (memory stores are per-process)")
	}
	if cfg.Redis.Addr == "" {
		log.Fatal("worker requires REDIS_ADDR")
	}

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.Store.DSN, cfg.Store.MaxConns, cfg.Store.MinConns)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	redisClient, err := redisconn.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer redisClient.Close()

	w := watcher.New(store.NewPostgres(database.Pool), redisClient)
	c, err := w.Start()
	if err != nil {
		log.Fatalf("start watcher: %v", err)
	}
	defer c.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Println("worker shutting down")
}
