package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/application/subscription/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

type UpgradeRequest struct {
	Plan string `json:"plan"`
}

type SubscriptionHandler struct {
	getSubscriptionUC getSubscriptionUseCase
	prepareUpgradeUC  prepareUpgradeUseCase
	logger            logger.Interface
}

func NewSubscriptionHandler(
	getSubscriptionUC getSubscriptionUseCase,
	prepareUpgradeUC prepareUpgradeUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getSubscriptionUC: getSubscriptionUC,
		prepareUpgradeUC:  prepareUpgradeUC,
		logger:            logger,
	}
}

// GetSubscription returns the subscription and its payment history
// @Summary Get subscription details
// @Tags Subscription
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SubscriptionDetailsDTO
// @Failure 401 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /subscription/upgrade [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	details, err := h.getSubscriptionUC.Execute(c.Request.Context(), ac)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, details)
}

// PrepareUpgrade checks that the caller can start a Pro checkout
// @Summary Prepare upgrade
// @Tags Subscription
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpgradeRequest false "Target plan, defaults to Pro"
// @Success 200 {object} dto.UpgradeReadinessDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /subscription/upgrade [post]
func (h *SubscriptionHandler) PrepareUpgrade(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warnw("invalid request body for upgrade", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.prepareUpgradeUC.Execute(c.Request.Context(), ac, usecases.PrepareUpgradeCommand{Plan: req.Plan})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}
