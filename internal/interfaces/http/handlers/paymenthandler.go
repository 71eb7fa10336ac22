package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/oysterbuild/backend/internal/application/billing/usecases"
	"github.com/oysterbuild/backend/internal/interfaces/http/middleware"
	"github.com/oysterbuild/backend/internal/shared/constants"
	"github.com/oysterbuild/backend/internal/shared/logger"
	"github.com/oysterbuild/backend/internal/shared/utils"
)

type PaymentHandler struct {
	initiatePaymentUC *billingUsecases.InitiatePaymentUseCase
	handleWebhookUC   *billingUsecases.HandleWebhookUseCase
	logger            logger.Interface
}

func NewPaymentHandler(
	initiatePaymentUC *billingUsecases.InitiatePaymentUseCase,
	handleWebhookUC *billingUsecases.HandleWebhookUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		initiatePaymentUC: initiatePaymentUC,
		handleWebhookUC:   handleWebhookUC,
		logger:            logger,
	}
}

type InitiatePaymentRequest struct {
	InvoiceID string `form:"invoice_id" json:"invoice_id" binding:"required"`
	Provider  string `form:"provider" json:"provider" binding:"required,oneof=PAYSTACK"`
}

type InitiatePaymentResponse struct {
	AuthorizationURL  string `json:"authorization_url"`
	Reference         string `json:"reference"`
	ProviderReference string `json:"provider_reference"`
}

// InitiatePayment opens a gateway checkout for a pending invoice. The payer
// email comes from the authenticated principal, never the request body.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	email := middleware.CurrentUserEmail(c)
	if email == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req InitiatePaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid payment request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := billingUsecases.InitiatePaymentCommand{
		InvoiceNumber: req.InvoiceID,
		Provider:      req.Provider,
		Email:         email,
	}

	result, err := h.initiatePaymentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to initiate payment", "error", err, "invoice_id", req.InvoiceID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := InitiatePaymentResponse{
		AuthorizationURL:  result.AuthorizationURL,
		Reference:         result.Reference,
		ProviderReference: result.ProviderRef,
	}

	utils.SuccessResponse(c, http.StatusOK, "payment initiated successfully", response)
}

// HandlePaystackWebhook receives Paystack event deliveries. The raw body is
// needed for HMAC verification, so this handler never binds the payload.
func (h *PaymentHandler) HandlePaystackWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	cmd := billingUsecases.HandleWebhookCommand{
		Provider:  constants.ProviderPaystack,
		Payload:   payload,
		Signature: c.GetHeader("x-paystack-signature"),
	}

	if err := h.handleWebhookUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("failed to process webhook", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "webhook processed successfully", nil)
}
