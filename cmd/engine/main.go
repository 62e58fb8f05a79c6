package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/cache"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/config"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/domain"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/events"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/httpapi"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/store"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Engine data dir: env wins (the UI shell can pass one), else local folder.
	dataDir := os.Getenv("SB_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal("create data dir", zap.Error(err))
	}

	// Single-user tool: refuse to start a second engine on the same data dir.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatal("acquire lock", zap.Error(err))
	}
	if !locked {
		log.Fatal("another engine is already running on this data dir",
			zap.String("data_dir", dataDir))
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatal("config bootstrap failed", zap.Error(err))
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatal("config load failed", zap.String("path", userCfgPath), zap.Error(err))
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, warn := range vr.Warnings {
		log.Warn("config", zap.String("warning", warn))
	}
	if !vr.OK() {
		log.Fatal("config invalid", zap.Strings("errors", vr.Errors))
	}
	// The data dir was resolved before the config could be read, so write the
	// resolved value back; GET /config then reports the dir actually in use.
	cfg.App.DataDir = dataDir
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, cfg.Storage.DBFile)
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal("open database", zap.String("path", dbPath), zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.EnsureSchema(ctx, db.Pool, cfg.Storage.CSVPaths, log); err != nil {
		cancel()
		log.Fatal("schema bootstrap failed", zap.Error(err))
	}
	cancel()

	listings := cache.NewListings(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		func(ctx context.Context) ([]domain.Listing, error) {
			return store.LoadListings(ctx, db.Pool)
		},
	)

	hub := events.NewHub()
	metrics := httpapi.NewMetrics()

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		Log:          log,
		Listings:     listings,
		Metrics:      metrics,
		CfgVal:       &cfgVal,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		WriteLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("listen", zap.String("addr", addr), zap.Error(err))
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover(log),
			httpapi.AccessLog(log),
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shutdown endpoint guarded by a token the UI shell reads from disk.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal("generate shutdown token", zap.Error(err))
	}
	tokenPath := filepath.Join(dataDir, "engine.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		log.Fatal("write shutdown token", zap.String("path", tokenPath), zap.Error(err))
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Info("engine listening",
		zap.String("addr", "http://"+addr),
		zap.String("db", dbPath),
	)
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal("serve", zap.Error(err))
	}
}
