package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/cache"
	"github.com/sobatoken/burn-backend/cfg"
	"github.com/sobatoken/burn-backend/db"
	"github.com/sobatoken/burn-backend/external"
	"github.com/sobatoken/burn-backend/metrics"
	"github.com/sobatoken/burn-backend/server/api"
	"github.com/sobatoken/burn-backend/services/token"
	"github.com/sobatoken/burn-backend/solana"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("cannot load .env: %s", err.Error())
	}

	serviceCfg, err := cfg.New()
	if err != nil {
		log.Fatalf("invalid configuration: %s", err.Error())
	}

	if serviceCfg.SentryDSN != "" {
		if err := setupSentry(serviceCfg); err != nil {
			log.Fatalf("cannot init sentry: %s", err.Error())
		}
		defer sentry.Flush(2 * time.Second)
	}

	logger, err := newLogger(serviceCfg)
	if err != nil {
		log.Fatalf("cannot init logger: %s", err.Error())
	}
	logger.Info("Start API server...")

	defer func() {
		if err := recover(); err != nil {
			logger.Error("cannot recover", zap.Any("panic", err))
		}
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, serviceCfg, logger); err != nil {
		exitOnError(logger, err)
	}
}

var (
	flushSentry = sentry.Flush
	osExit      = os.Exit
)

// exitOnError exits non-zero. os.Exit skips deferred calls, so pending sentry
// events are flushed first.
func exitOnError(logger *zap.Logger, err error) {
	logger.Error("API server stopped", zap.Error(err))
	_ = logger.Sync()
	flushSentry(2 * time.Second)
	osExit(1)
}

func run(ctx context.Context, serviceCfg cfg.Config, logger *zap.Logger) error {
	m := metrics.New()

	dbClient, err := db.NewClient(db.Config{
		DbAdapter: db.MGO,
		DbName:    serviceCfg.StorageDB,
		URL:       serviceCfg.StorageURI,
		MinConn:   1,
		MaxConn:   8,
		FlushDB:   serviceCfg.StorageIsFlush,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dbClient.Close(closeCtx)
	}()
	pingCtx, pingCancel := context.WithTimeout(ctx, serviceCfg.DefaultAPITimeout)
	if err := dbClient.Ping(pingCtx); err != nil {
		// the archive is best effort, the API still serves without it
		logger.Warn("cannot reach storage", zap.Error(err))
	}
	pingCancel()

	cacheClient, err := cache.New(cache.Config{
		Adapter:  cache.Adapter(serviceCfg.CacheEngine),
		URL:      serviceCfg.CacheURL,
		DB:       serviceCfg.CacheDB,
		Password: serviceCfg.CachePassword,
		IsFlush:  serviceCfg.CacheIsFlush,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	chainClient, err := solana.NewClient(solana.ClientConfig{
		RPC:         solana.NewRPCClient(serviceCfg.SolanaRPCURL),
		TxCacheSize: serviceCfg.SolanaTxCacheSize,
		Metrics:     m,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	explorer := external.NewSolscan(external.SolscanConfig{
		BaseURL: serviceCfg.SolscanAPIURL,
		APIKey:  serviceCfg.SolscanAPIKey,
		Metrics: m,
		Logger:  logger,
	})

	svc, err := token.New(token.Config{
		Chain:        chainClient,
		Explorer:     explorer,
		Cache:        cacheClient,
		Archive:      dbClient,
		Metrics:      m,
		Logger:       logger,
		TokenAddress: serviceCfg.TokenAddress,
		BurnWallet:   serviceCfg.BurnWallet,
		CacheTTL:     serviceCfg.CacheTTL,
	})
	if err != nil {
		return err
	}

	srv := api.NewServer().
		SetLogger(logger).
		SetService(svc).
		SetStorage(dbClient).
		SetMetrics(m).
		SetChainInfo(serviceCfg.SolanaRPCURL, serviceCfg.TokenAddress).
		SetProduction(serviceCfg.IsProduction()).
		SetTimeout(serviceCfg.DefaultAPITimeout)

	logger.Info("Environment",
		zap.String("mode", serviceCfg.ServerMode),
		zap.String("solanaRpc", serviceCfg.SolanaRPCURL),
		zap.String("cache", serviceCfg.CacheEngine),
		zap.String("port", serviceCfg.Port),
	)
	return api.Start(ctx, api.NewEcho(srv), serviceCfg.ListenAddr(), logger)
}

func setupSentry(cfg cfg.Config) error {
	opts := sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.ServerMode,
	}
	if err := sentry.Init(opts); err != nil {
		return err
	}
	return nil
}
