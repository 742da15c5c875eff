package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/okheya/food-rescue/internal/catalog"
	"github.com/okheya/food-rescue/internal/config"
	"github.com/okheya/food-rescue/internal/database"
	"github.com/okheya/food-rescue/internal/engine"
	"github.com/okheya/food-rescue/internal/handler"
	"github.com/okheya/food-rescue/internal/ledger"
	"github.com/okheya/food-rescue/internal/middleware"
	"github.com/okheya/food-rescue/internal/queue"
	"github.com/okheya/food-rescue/internal/router"
	"github.com/okheya/food-rescue/internal/store"
)

func main() {
	_ = godotenv.Load() // load .env when present; real env always wins
	cfg := config.Load()

	cat := catalog.New()
	led := ledger.New()

	// When a database is configured it mirrors the in-memory state:
	// listings and the ledger snapshot are loaded at startup and every
	// mutation is persisted as a tail step.  Without one, the session
	// starts from the built-in seed and state lives in memory only.
	var st engine.Store
	if cfg.DBConfigured() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		mysqlStore := store.NewMySQL(db)
		st = mysqlStore

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		listings, err := mysqlStore.LoadListings(ctx)
		if err != nil {
			log.Fatalf("load listings: %v", err)
		}
		if len(listings) == 0 {
			// First boot against an empty database: seed it.
			for _, l := range catalog.Seed(time.Now().UTC()) {
				if err := mysqlStore.SaveListing(ctx, l); err != nil {
					log.Fatalf("seed listing %s: %v", l.ID, err)
				}
				listings = append(listings, l)
			}
		}
		for _, l := range listings {
			if err := cat.Add(l); err != nil {
				log.Fatalf("catalog add %s: %v", l.ID, err)
			}
		}

		entries, err := mysqlStore.LoadLedger(ctx)
		if err != nil {
			log.Fatalf("load ledger: %v", err)
		}
		if err := led.Restore(entries); err != nil {
			log.Fatalf("restore ledger: %v", err)
		}
		log.Printf("restored %d listings and %d reservations from database", cat.Len(), led.Len())
	} else {
		for _, l := range catalog.Seed(time.Now().UTC()) {
			if err := cat.Add(l); err != nil {
				log.Fatalf("catalog add %s: %v", l.ID, err)
			}
		}
		log.Printf("no database configured; running memory-only with %d seed listings", cat.Len())
	}

	eng := engine.New(cat, led, st)

	e := echo.New()

	// Redis-backed response cache and rate limiting; both become
	// no-ops when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewListingHandler(eng))
	router.RegisterSession(e, handler.NewSessionHandler(cfg), cfg.JWTSecret)
	router.RegisterReservations(e, handler.NewReservationHandler(eng), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(eng), cfg.JWTSecret)

	// Background consumer appending reservation activity to
	// logs/reservations.log; reconnects on its own.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
