package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"notevault/services"
)

type HealthHandler struct {
	Mongo *mongo.Client
	// Blacklist is nil when Redis is not configured.
	Blacklist *services.RedisTokenBlacklist
}

// Health reports reachability of the backing stores. Degraded dependencies
// yield 503 so load balancers rotate the instance out.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	checks["mongo"] = "up"
	if err := h.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		checks["mongo"] = "down"
		healthy = false
	}

	checks["redis"] = "disabled"
	if h.Blacklist != nil {
		checks["redis"] = "up"
		if err := h.Blacklist.Client.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		}
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status": state,
		"time":   time.Now().UTC(),
		"checks": checks,
	})
}
