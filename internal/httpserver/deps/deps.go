package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecocycle-dz/ecocycle/internal/gazetteer"
	"github.com/ecocycle-dz/ecocycle/internal/logger"
	"github.com/ecocycle-dz/ecocycle/internal/market"
	"github.com/ecocycle-dz/ecocycle/internal/store/sqlite"
	"github.com/ecocycle-dz/ecocycle/internal/syncer"
)

type Deps struct {
	Logger      logger.Logger
	StartTime   time.Time
	Version     string
	Commit      string
	BuildDate   string
	GoVersion   string
	TimeNow     func() time.Time     // for testing, defaults to time.Now
	RedisClient *redis.Client        // Redis client connection (snapshot persistence)
	Market      *market.Store        // In-memory listing store
	Catalog     *sqlite.Store        // Indexed durable listing store
	Syncer      *syncer.Syncer       // Dual-store reconciliation facade
	Gazetteer   *gazetteer.Gazetteer // Place-name autocomplete ranking
	SyncTrigger chan struct{}        // Channel to trigger a manual sync pass
}
