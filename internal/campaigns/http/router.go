package http

import (
	"github.com/gin-gonic/gin"

	"github.com/fundchain/campaign-engine/internal/auth"
	"github.com/fundchain/campaign-engine/internal/campaigns/engine"
)

// Register attaches campaign routes to the given router group.
// Mutating routes require a caller account; reads do not, except the
// creator/backer checks which are relative to the caller.
func Register(rg *gin.RouterGroup, eng *engine.Engine, limit gin.HandlerFunc) {
	h := NewHandler(eng)

	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.GET("/:id/backers", h.backers)
	rg.GET("/:id/events", h.events)
	rg.GET("/:id/expired", h.expired)
	rg.GET("/:id/funded", h.funded)

	rg.GET("/:id/creator", auth.RequireAccount(), h.creator)
	rg.GET("/:id/backer", auth.RequireAccount(), h.backer)

	mutating := rg.Group("")
	mutating.Use(auth.RequireAccount())
	if limit != nil {
		mutating.Use(limit)
	}
	mutating.POST("", h.create)
	mutating.POST("/:id/fund", h.fund)
	mutating.POST("/:id/withdraw", h.withdraw)
}
