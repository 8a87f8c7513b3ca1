// README: Entry point; loads config, wires optional backends and services, serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ridecompare/internal/ai"
	"ridecompare/internal/config"
	httptransport "ridecompare/internal/http"
	"ridecompare/internal/infra"
	"ridecompare/internal/logger"
	"ridecompare/internal/maps"
	"ridecompare/internal/modules/comparison"
	"ridecompare/internal/modules/pricing"
	"ridecompare/internal/modules/routing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Sentry.DSN != "" {
		flush, err := infra.InitSentry(cfg.Sentry.DSN, cfg.Env)
		if err != nil {
			logger.Fatal("sentry init failed", zap.Error(err))
		}
		defer flush()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httptransport.HealthCheck{}

	var pricingStore *pricing.Store
	if cfg.DB.DSN != "" {
		if cfg.DB.Migrate {
			version, err := infra.Migrate(cfg.DB.DSN)
			if err != nil {
				logger.Fatal("migrations failed", zap.Error(err))
			}
			logger.Info("schema up to date", zap.Uint("version", version))
		}
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init failed", zap.Error(err))
		}
		defer dbPool.Close()
		pricingStore = pricing.NewStore(dbPool)
		checks["postgres"] = dbPool.Ping
	}
	pricingSvc := pricing.NewService(pricingStore)
	if err := pricingSvc.Reload(ctx); err != nil {
		logger.Warn("tariff reload failed, using built-in tariffs", zap.Error(err))
	}

	var routeCache *routing.Store
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Warn("redis unavailable, route cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			routeCache = routing.NewStore(redisClient, cfg.Routing.CacheTTL)
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	mapsOpts := maps.Options{
		Region:   cfg.Routing.Region,
		Language: cfg.Routing.Language,
		Country:  cfg.Routing.Components,
	}
	var finder routing.Finder
	var places *maps.PlacesService
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey, mapsOpts)
		if err != nil {
			logger.Fatal("maps directions init failed", zap.Error(err))
		}
		breaker := routing.NewBreakerFinder("directions", routeSvc, routing.BreakerConfig{
			Failures: cfg.Routing.BreakerFailures,
			Cooldown: cfg.Routing.BreakerCooldown,
		})
		finder = breaker
		checks["directions"] = func(context.Context) error {
			if state := breaker.State(); state == "open" {
				return errors.New("circuit open")
			}
			return nil
		}
		if places, err = maps.NewPlacesService(cfg.Maps.APIKey, mapsOpts); err != nil {
			logger.Fatal("maps places init failed", zap.Error(err))
		}
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, routes use the offline fallback")
	}
	routingSvc := routing.NewService(finder, routeCache)

	seed := uint64(time.Now().UnixNano())
	gen := comparison.NewGenerator(pricingSvc, rand.New(rand.NewPCG(seed, seed>>1)))
	comparisonSvc := comparison.NewService(gen, routingSvc)

	var parser ai.TripParser = ai.RuleParser{}
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			logger.Warn("gemini init failed, using rule parser", zap.Error(err))
		} else {
			defer gemini.Close()
			parser = ai.FallbackParser{Primary: gemini, Secondary: ai.RuleParser{}}
		}
	}

	var verifier infra.TokenVerifier
	if cfg.Firebase.ProjectID != "" {
		if verifier, err = infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile); err != nil {
			logger.Fatal("firebase init failed", zap.Error(err))
		}
	}

	deps := httptransport.ServerDeps{
		Pricing:     pricingSvc,
		Comparison:  comparisonSvc,
		Routing:     routingSvc,
		Parser:      parser,
		Verifier:    verifier,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Checks:      checks,
	}
	if places != nil {
		deps.Places = places
	}
	server := httptransport.NewServer(cfg, deps)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("ridecompare api listening", zap.String("addr", server.Addr()), zap.String("env", cfg.Env))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
