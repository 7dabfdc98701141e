package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/application/payment/dto"
	"github.com/promptpilot/promptpilot/internal/application/payment/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/constants"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// PaymentVerifiedMessage confirms a successful checkout.
const PaymentVerifiedMessage = "Payment verified and subscription upgraded successfully"

// MaxWebhookBodyBytes caps the unauthenticated webhook payload.
const MaxWebhookBodyBytes = 64 << 10

type CreateOrderRequest struct {
	Amount int64  `json:"amount"`
	UserID string `json:"userId"`
	Plan   string `json:"plan"`
	Email  string `json:"email" validate:"omitempty,email"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	UserID    string `json:"userId"`
}

type CreateOrderResponse struct {
	Success bool          `json:"success"`
	Order   *dto.OrderDTO `json:"order"`
}

type VerifyPaymentResponse struct {
	Success      bool                         `json:"success"`
	Message      string                       `json:"message"`
	Subscription *dto.VerifiedSubscriptionDTO `json:"subscription"`
}

type PaymentHandler struct {
	createOrderUC   createOrderUseCase
	verifyPaymentUC verifyPaymentUseCase
	webhookUC       handleWebhookUseCase
	logger          logger.Interface
}

func NewPaymentHandler(
	createOrderUC createOrderUseCase,
	verifyPaymentUC verifyPaymentUseCase,
	webhookUC handleWebhookUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		createOrderUC:   createOrderUC,
		verifyPaymentUC: verifyPaymentUC,
		webhookUC:       webhookUC,
		logger:          logger,
	}
}

// CreateOrder opens a provider order for the Pro upgrade
// @Summary Create payment order
// @Tags Payment
// @Accept json
// @Produce json
// @Security Bearer
// @Security ServiceKey
// @Param request body CreateOrderRequest true "Order request"
// @Success 200 {object} CreateOrderResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /payment/create-order [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create order", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ac, ok := payingUser(c, req.UserID)
	if !ok {
		return
	}
	if req.Amount == 0 || ac.UserID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Amount and userId are required")
		return
	}

	email := req.Email
	if email == "" {
		email = ac.Email
	}

	order, err := h.createOrderUC.Execute(c.Request.Context(), usecases.CreateOrderCommand{
		UserID: ac.UserID,
		Email:  email,
		Plan:   req.Plan,
		Amount: req.Amount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, CreateOrderResponse{Success: true, Order: order})
}

// VerifyPayment confirms the checkout signature and activates Pro
// @Summary Verify payment
// @Tags Payment
// @Accept json
// @Produce json
// @Security Bearer
// @Security ServiceKey
// @Param request body VerifyPaymentRequest true "Checkout result"
// @Success 200 {object} VerifyPaymentResponse
// @Failure 400 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /payment/verify [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for verify payment", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ac, ok := payingUser(c, req.UserID)
	if !ok {
		return
	}

	sub, err := h.verifyPaymentUC.Execute(c.Request.Context(), usecases.VerifyPaymentCommand{
		UserID:    ac.UserID,
		Email:     ac.Email,
		Name:      ac.Name,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, VerifyPaymentResponse{
		Success:      true,
		Message:      PaymentVerifiedMessage,
		Subscription: sub,
	})
}

// Webhook handles POST /payment/webhook. The raw body is needed for the
// signature check, so it is read before any decoding.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warnw("webhook body too large", "limit", tooLarge.Limit)
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.webhookUC.Execute(c.Request.Context(), body, c.GetHeader(constants.HeaderWebhookSignature)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"success": true})
}
