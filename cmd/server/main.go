package main

import (
	"context"
	"database/sql"
	"errors"
	"food-rescue-service/internal/adapters/events"
	"food-rescue-service/internal/adapters/gemini"
	"food-rescue-service/internal/adapters/googlemaps"
	"food-rescue-service/internal/adapters/memory"
	"food-rescue-service/internal/adapters/nominatim"
	"food-rescue-service/internal/adapters/ors"
	"food-rescue-service/internal/adapters/postgres"
	"food-rescue-service/internal/adapters/redisgeo"
	"food-rescue-service/internal/api"
	"food-rescue-service/internal/config"
	"food-rescue-service/internal/platform/db"
	"food-rescue-service/internal/ports"
	"food-rescue-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters behind ports, builds the services and starts the HTTP server.
// Every external integration is optional; missing keys leave the deterministic fallbacks in charge.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	var geocoder ports.Geocoder
	var openRoutes, commercialRoutes ports.RouteProvider
	if cfg.ORSAPIKey != "" {
		client, err := ors.NewClient(cfg.ORSAPIKey, ors.WithBaseURL(cfg.ORSBaseURL))
		if err != nil {
			log.Fatal(err)
		}
		geocoder, openRoutes = client, client
	} else {
		log.Println("ORS_API_KEY not set: geocoding via Nominatim, ORS routing disabled")
		geocoder = nominatim.NewGeocoder(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.NominatimRPS)
	}

	if cfg.GoogleMapsAPIKey != "" {
		directions, err := googlemaps.NewDirections(cfg.GoogleMapsAPIKey)
		if err != nil {
			log.Fatal(err)
		}
		commercialRoutes = directions
	}

	var classifier ports.FoodClassifier
	var advisor ports.DriverAdvisor
	if cfg.GeminiAPIKey != "" {
		model, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal(err)
		}
		defer model.Close()
		classifier, advisor = model, model
	}

	var locator ports.DriverLocator
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable addr=%s err=%v (driver proximity falls back to stored positions)", cfg.RedisAddr, err)
		} else {
			locator = redisgeo.NewLocator(rdb, "")
		}
	}

	var publisher ports.EventPublisher = events.LogPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatal(err)
		}
		defer kafka.Close()
		publisher = kafka
	}

	geo := services.NewGeoResolver(geocoder, cfg.ProviderTimeout)
	svc := services.NewRescueService(services.RescueDeps{
		Store:      store,
		Geo:        geo,
		Perish:     services.NewPerishabilityEstimator(classifier, cfg.PerishabilityExternalWeight, cfg.ProviderTimeout),
		Ranker:     services.NewRecipientRanker(services.NewMatchScorer(geo), cfg.ScoringConcurrency),
		Routes:     services.NewRouteEstimator(geo, openRoutes, commercialRoutes, cfg.ProviderTimeout),
		Assigner:   services.NewDriverAssigner(advisor, cfg.ProviderTimeout),
		Events:     publisher,
		Locator:    locator,
		MatchLimit: cfg.MatchLimit,
	})

	// Route assignment can wait on several provider timeouts in sequence.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStore returns the Postgres store when DATABASE_URL is set and the
// in-memory store otherwise.
func openStore(ctx context.Context, cfg config.Config) (ports.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set: using in-memory store")
		return memory.NewStore(), func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := migrateAndSeed(ctx, conn, cfg.SeedPath); err != nil {
			conn.Close()
			return nil, nil, err
		}
	}
	return postgres.NewStore(conn), func() { conn.Close() }, nil
}

func migrateAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := postgres.Migrate(conn); err != nil {
		return err
	}
	return postgres.SeedFromJSON(ctx, conn, seedPath)
}
