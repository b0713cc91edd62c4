package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/pwspen/vlmcar/internal/decision"
	"github.com/pwspen/vlmcar/internal/hub"
	"github.com/pwspen/vlmcar/internal/oracle"
)

func ProvideOracleClient(cfg *Config, logger *slog.Logger) *oracle.Client {
	return oracle.NewClient(oracle.Config{
		BaseURL:     cfg.OracleURL,
		APIKey:      cfg.OracleAPIKey,
		Model:       cfg.OracleModel,
		Schema:      decision.Schema(cfg.OracleSchema),
		Target:      cfg.Target,
		MaxAttempts: cfg.OracleMaxAttempts,
	}, logger)
}

// RegisterRelay attaches a redis pub/sub observer to the hub so remote
// dashboards can follow the car without holding a websocket to it. Only
// wired when REDIS_ADDR is set.
func RegisterRelay(cfg *Config, h *hub.Hub, logger *slog.Logger) {
	if cfg.RedisAddr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	h.Register(hub.NewRedisRelay(client, cfg.RedisChannel, logger))
	logger.Info("redis relay attached", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
}

var InfrastructureModule = fx.Options(
	fx.Provide(ProvideOracleClient),
	fx.Invoke(RegisterRelay),
)
