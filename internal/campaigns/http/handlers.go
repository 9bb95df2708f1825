package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fundchain/campaign-engine/internal/auth"
	"github.com/fundchain/campaign-engine/internal/campaigns/domain"
	"github.com/fundchain/campaign-engine/internal/campaigns/engine"
)

type Handler struct {
	eng *engine.Engine
}

func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{eng: eng}
}

func (h *Handler) create(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id, err := h.eng.CreateProject(c.Request.Context(), domain.CreateProjectRequest{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		FundingGoal: domain.Money(req.FundingGoal),
		Deadline:    req.Deadline,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Creator:     auth.Account(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project_id": id})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.eng.ListProjects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	p, err := h.eng.GetProject(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) fund(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req fundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if err := h.eng.FundProject(c.Request.Context(), id, auth.Account(c), domain.Money(req.Amount)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) withdraw(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.eng.WithdrawFunds(c.Request.Context(), id, auth.Account(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) backers(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	entries, err := h.eng.GetBackers(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "backers": entries})
}

func (h *Handler) events(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	log, err := h.eng.ListEvents(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "events": log})
}

func (h *Handler) expired(c *gin.Context) {
	h.boolCheck(c, h.eng.IsProjectExpired, "expired")
}

func (h *Handler) funded(c *gin.Context) {
	h.boolCheck(c, h.eng.IsProjectCompleted, "funded")
}

func (h *Handler) creator(c *gin.Context) {
	h.accountCheck(c, h.eng.IsProjectCreator, "creator")
}

func (h *Handler) backer(c *gin.Context) {
	h.accountCheck(c, h.eng.IsProjectBacker, "backer")
}

func (h *Handler) boolCheck(c *gin.Context, check func(ctx context.Context, id int64) (bool, error), field string) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	v, err := check(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, field: v})
}

func (h *Handler) accountCheck(c *gin.Context, check func(ctx context.Context, id int64, account domain.Account) (bool, error), field string) {
	id, ok := projectID(c)
	if !ok {
		return
	}
	v, err := check(c.Request.Context(), id, auth.Account(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, field: v})
}

func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidProjectParameters),
		errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrProjectExpired),
		errors.Is(err, domain.ErrProjectAlreadyFunded),
		errors.Is(err, domain.ErrSelfFundingForbidden),
		errors.Is(err, domain.ErrNothingToWithdraw),
		errors.Is(err, domain.ErrCampaignStillActive):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrTransferFailed):
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
