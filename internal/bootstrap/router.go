package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/fundchain/campaign-engine/internal/api/http"
	"github.com/fundchain/campaign-engine/internal/api/http/middleware"
	"github.com/fundchain/campaign-engine/internal/auth"
	campaignhttp "github.com/fundchain/campaign-engine/internal/campaigns/http"

	"github.com/fundchain/campaign-engine/internal/campaigns/engine"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Engine         *engine.Engine
	DB             *pgxpool.Pool
	Redis          *redis.Client
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.CORSOrigins) == 1 && dep.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = dep.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Wallet-Address", "X-Request-Id")
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(auth.WithAccount())

	var limit gin.HandlerFunc
	if dep.RateLimitRPS > 0 {
		limit = middleware.RateLimit(rate.Limit(dep.RateLimitRPS), dep.RateLimitBurst)
	}

	campaignhttp.Register(api.Group("/projects"), dep.Engine, limit)

	return r
}
