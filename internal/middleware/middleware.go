package middleware

import (
	"github.com/cyklo2/autoresponder/internal/config"
	"github.com/cyklo2/autoresponder/internal/database"
	"github.com/cyklo2/autoresponder/internal/logger"
)

// Middleware holds all HTTP middleware
type Middleware struct {
	rdb *database.Redis
	log *logger.Logger
	cfg *config.Config
}

// New creates a new Middleware instance. rdb may be nil when rate limiting
// is disabled; the rate-limit middleware then passes requests through.
func New(rdb *database.Redis, log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		rdb: rdb,
		log: log,
		cfg: cfg,
	}
}
