package handlers

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hoopsdfs/roster-optimizer/internal/dataset"
	"github.com/hoopsdfs/roster-optimizer/internal/optimizer"
	"github.com/hoopsdfs/roster-optimizer/internal/types"
	"github.com/hoopsdfs/roster-optimizer/pkg/cache"
	"github.com/hoopsdfs/roster-optimizer/pkg/config"
)

// OptimizationHandler handles roster optimization endpoints
type OptimizationHandler struct {
	provider dataset.Provider
	cache    *cache.RosterCacheService
	config   *config.Config
	logger   *logrus.Logger
}

// NewOptimizationHandler creates a new optimization handler. The cache is
// optional; a nil cache disables result caching.
func NewOptimizationHandler(
	provider dataset.Provider,
	cacheService *cache.RosterCacheService,
	cfg *config.Config,
	logger *logrus.Logger,
) *OptimizationHandler {
	return &OptimizationHandler{
		provider: provider,
		cache:    cacheService,
		config:   cfg,
		logger:   logger,
	}
}

// OptimizeRequest carries per-request overrides of the configured league
// rules. Nil fields fall back to configuration.
type OptimizeRequest struct {
	SalaryCap  *float64 `json:"salary_cap,omitempty"`
	MaxPerTeam *int     `json:"max_per_team,omitempty"`
	Debug      bool     `json:"debug,omitempty"`
}

// TradeRequest carries the current roster names plus trade-mode overrides.
type TradeRequest struct {
	Roster       []string `json:"roster" binding:"required"`
	SalaryCap    *float64 `json:"salary_cap,omitempty"`
	Transactions *int     `json:"transactions,omitempty"`
	Protected    []string `json:"protected,omitempty"`
	Debug        bool     `json:"debug,omitempty"`
}

// OptimizeRoster handles full-rebuild optimization requests
func (h *OptimizationHandler) OptimizeRoster(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	cacheKey := h.generateCacheKey("optimize", req)
	if h.cache != nil {
		if cached, err := h.cache.GetRosterOutcome(c.Request.Context(), cacheKey); err == nil && cached != nil {
			h.logger.WithField("cache_key", cacheKey).Info("Returning cached roster outcome")
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	players, err := h.provider.EligiblePlayers(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load player dataset")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to load player dataset",
			Code:  "DATASET_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	cfg := h.buildConfig(req.SalaryCap, req.MaxPerTeam, nil, req.Debug)
	outcome, err := optimizer.BuildRoster(c.Request.Context(), players, cfg, h.logger)
	if err != nil {
		h.logger.WithError(err).Error("Roster optimization failed")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "Optimization failed",
			Code:  "OPTIMIZATION_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	if h.cache != nil {
		ttl := time.Duration(h.config.CacheTTLHours) * time.Hour
		if err := h.cache.SetRosterOutcome(c.Request.Context(), cacheKey, outcome, ttl); err != nil {
			h.logger.WithError(err).Warn("Failed to cache roster outcome")
		}
	}

	c.JSON(http.StatusOK, outcome)
}

// ProposeTrade handles incremental trade optimization requests
func (h *OptimizationHandler) ProposeTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	cacheKey := h.generateCacheKey("trade", req)
	if h.cache != nil {
		if cached, err := h.cache.GetTradeOutcome(c.Request.Context(), cacheKey); err == nil && cached != nil {
			h.logger.WithField("cache_key", cacheKey).Info("Returning cached trade outcome")
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	current, err := dataset.ResolveRoster(c.Request.Context(), req.Roster, h.provider, h.config.RosterSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error: "Current roster failed validation",
			Code:  "ROSTER_VALIDATION_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	pool, err := h.provider.EligiblePlayers(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load player dataset")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error: "Failed to load player dataset",
			Code:  "DATASET_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	protected := h.config.ProtectedSet()
	for _, name := range req.Protected {
		protected[name] = true
	}

	cfg := h.buildConfig(req.SalaryCap, nil, req.Transactions, req.Debug)
	outcome, err := optimizer.ProposeTrade(c.Request.Context(), current, pool, cfg, protected, h.logger)
	if err != nil {
		h.logger.WithError(err).Error("Trade optimization failed")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "Optimization failed",
			Code:  "OPTIMIZATION_ERROR",
			Details: map[string]string{
				"error": err.Error(),
			},
		})
		return
	}

	if h.cache != nil {
		ttl := time.Duration(h.config.CacheTTLHours) * time.Hour
		if err := h.cache.SetTradeOutcome(c.Request.Context(), cacheKey, outcome, ttl); err != nil {
			h.logger.WithError(err).Warn("Failed to cache trade outcome")
		}
	}

	c.JSON(http.StatusOK, outcome)
}

// GetCacheStatus exposes cache statistics
func (h *OptimizationHandler) GetCacheStatus(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusOK, gin.H{"connected": false})
		return
	}
	c.JSON(http.StatusOK, h.cache.GetStatus(c.Request.Context()))
}

func (h *OptimizationHandler) buildConfig(salaryCap *float64, maxPerTeam, transactions *int, debug bool) optimizer.Config {
	constraints := h.config.RosterConstraints()
	if salaryCap != nil {
		constraints.SalaryCap = *salaryCap
	}
	if maxPerTeam != nil {
		constraints.MaxPerTeam = *maxPerTeam
	}
	if transactions != nil {
		constraints.MaxTransactions = *transactions
	}
	return optimizer.Config{
		Constraints:   constraints,
		SolverTimeout: h.config.SolverTimeout(),
		Debug:         debug || h.config.SolverDebug,
	}
}

func (h *OptimizationHandler) generateCacheKey(mode string, req interface{}) string {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Sprintf("%s:unkeyed", mode)
	}
	return fmt.Sprintf("%s:%x", mode, md5.Sum(data))
}
