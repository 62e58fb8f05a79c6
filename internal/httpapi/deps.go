package httpapi

import (
	"database/sql"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/cache"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/config"
	"github.com/anix-lynch/silicon-beach-jobs-clean/internal/events"
)

type Deps struct {
	DB  *sql.DB
	Hub *events.Hub
	Log *zap.Logger

	Listings *cache.Listings
	Metrics  *Metrics

	// Atomic store for config.Config so PUT /config swaps live settings.
	CfgVal      *atomic.Value
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Guards POST /referrals against a runaway UI loop. nil = unlimited.
	WriteLimiter *rate.Limiter
}
