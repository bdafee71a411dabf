package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"paylink/internal/models/request_models"
	"paylink/internal/services"
	"paylink/pkg/config"
	"paylink/pkg/utils"
)

type PaymentController struct {
	checkoutService  services.CheckoutServiceInterface
	reconcileService services.ReconcileServiceInterface
	methods          config.PaymentMethods
}

func NewPaymentController(
	checkoutService services.CheckoutServiceInterface,
	reconcileService services.ReconcileServiceInterface,
	methods config.PaymentMethods) *PaymentController {

	return &PaymentController{
		checkoutService:  checkoutService,
		reconcileService: reconcileService,
		methods:          methods,
	}
}

func (pc *PaymentController) CreateCheckoutHandler(c *gin.Context) {
	var request request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := pc.checkoutService.CreateCheckoutSession(c.Request.Context(), request.Slug)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout session created")
}

// PaymentMethodsHandler returns the manual payment instructions shown
// next to the hosted checkout option.
func (pc *PaymentController) PaymentMethodsHandler(c *gin.Context) {
	utils.RespondSuccess(c, pc.methods, "Fetched payment methods")
}

// HandleWebhook receives provider payment events. The raw body is needed
// for signature verification, so no binding happens here.
func (pc *PaymentController) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if err := pc.reconcileService.HandleProviderEvent(c.Request.Context(), payload, sig); err != nil {
		if errors.Is(err, utils.ErrUnauthorized) {
			// Signature failures get a 400 so the provider surfaces the
			// misconfiguration instead of retrying forever.
			utils.RespondError(c, http.StatusBadRequest, "Webhook signature verification failed")
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
