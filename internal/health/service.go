package health

import (
	"context"
	"net/http"
	"time"

	"shopsearch/internal/logger"
	"shopsearch/internal/platform/redis"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type OverallHealth struct {
	OverallStatus string                     `json:"overall_status"`
	Timestamp     string                     `json:"timestamp"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Components    map[string]ComponentStatus `json:"components"`
}

type Handler struct {
	log          *logger.Logger
	redisService *redis.Service
	startTime    time.Time
}

func NewHandler(redisSvc *redis.Service) *Handler {
	return &Handler{
		log:          logger.New("HealthCheck"),
		redisService: redisSvc,
		startTime:    time.Now(),
	}
}

// HandleHealth reports overall status including the redis dependency.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 8*time.Second)
	defer cancel()

	components := map[string]ComponentStatus{}
	allOk := true
	if err := h.redisService.HealthCheck(ctx); err != nil {
		allOk = false
		components["redis"] = ComponentStatus{Status: "error", Error: err.Error()}
	} else {
		components["redis"] = ComponentStatus{Status: "ok"}
	}

	response := OverallHealth{
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Components:    components,
	}
	if allOk {
		response.OverallStatus = "ok"
		return c.Status(http.StatusOK).JSON(response)
	}
	response.OverallStatus = "error"
	h.log.LogWarnf("health check failed: %+v", components)
	return c.Status(http.StatusServiceUnavailable).JSON(response)
}

func Limiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{"error": "Rate limit exceeded"})
		},
	})
}
