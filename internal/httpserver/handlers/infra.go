package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ecocycle-dz/ecocycle/internal/httpserver/deps"
)

type componentStatus struct {
	OK             bool   `json:"ok"`
	ListingsLoaded *int   `json:"listings_loaded,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Error          string `json:"error,omitempty"`
}

type infraResponse struct {
	StorageMode string                     `json:"storage_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		listingsCount := d.Market.Count()

		components := map[string]componentStatus{
			"marketplace": {
				OK:             true,
				ListingsLoaded: &listingsCount,
			},
			"redis":  checkRedis(d),
			"sqlite": checkCatalog(r.Context(), d),
		}

		response := infraResponse{
			StorageMode: determineStorageMode(components),
			Components:  components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// determineStorageMode summarizes the persistence posture: both
// substrates up = dual, one down = degraded (memory still serves),
// both down = volatile.
func determineStorageMode(components map[string]componentStatus) string {
	redisOK := components["redis"].OK
	sqliteOK := components["sqlite"].OK

	switch {
	case redisOK && sqliteOK:
		return "dual"
	case redisOK || sqliteOK:
		return "degraded"
	default:
		return "volatile"
	}
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshot-persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshot-persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshot-persistence-enabled",
		Error:  "none",
	}
}

func checkCatalog(ctx context.Context, d deps.Deps) componentStatus {
	if d.Catalog == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "indexed-queries-disabled",
			Error:  "store not initialized",
		}
	}

	// Statistics degrade to the zero value when the engine is down, a
	// cheap liveness probe without a dedicated ping.
	stats := d.Catalog.GetStatistics(ctx)
	count := stats.TotalListings

	return componentStatus{
		OK:             true,
		ListingsLoaded: &count,
		Mode:           "optimal",
		Impact:         "indexed-queries-enabled",
		Error:          "none",
	}
}
