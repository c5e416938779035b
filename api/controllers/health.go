package controllers

import (
	"net/http"

	"github.com/ssamu04/groceria/api/responses"
	"github.com/ssamu04/groceria/pkg/config"
	"github.com/ssamu04/groceria/pkg/logger"
	"github.com/ssamu04/groceria/pkg/mongodb"
	"github.com/ssamu04/groceria/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Groceria-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the document store and rate-limit backend.
func HealthReady(cfg *config.Config, logg *logger.Logger, mongoP mongodb.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Groceria-Env", cfg.App.Env)

		checks := map[string]string{}
		healthy := true

		if mongoP != nil {
			if err := mongoP.Ping(r.Context()); err != nil {
				checks["mongo"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.mongo_unreachable", err)
				}
			} else {
				checks["mongo"] = "up"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(r.Context(), "health.redis_unreachable", err)
				}
			} else {
				checks["redis"] = "up"
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		responses.WriteJSON(w, status, map[string]any{"status": state, "checks": checks})
	}
}
