package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/repositories"
	"github.com/softwrapstudio-web/Softwrap-Studio/services"
)

type PaymentController struct {
	paymentService *services.PaymentService
}

func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

func (ctrl *PaymentController) flowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Cart is empty",
		})
	case errors.Is(err, repositories.ErrNoShippingAddress):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "No shipping address on file. Complete checkout first",
		})
	case errors.Is(err, services.ErrPaymentVerification):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Payment verification failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Payment failed. Please try again",
			Error:   err.Error(),
		})
	}
}

// @Summary Payment summary
// @Description Grand total for the selected payment method
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Param method query string false "Payment method (razorpay, cod, whatsapp)"
// @Success 200 {object} models.Response
// @Router /payment/summary [get]
func (ctrl *PaymentController) GetSummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	method := c.DefaultQuery("method", models.PaymentMethodRazorpay)

	quote := ctrl.paymentService.Quote(c.Request.Context(), userID, method)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment summary",
		Data:    quote,
	})
}

// @Summary Initiate gateway payment
// @Description Create a pending order and a Razorpay order for the widget
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /payment/razorpay/initiate [post]
func (ctrl *PaymentController) InitiateRazorpay(c *gin.Context) {
	userID := c.GetInt("user_id")

	initiation, err := ctrl.paymentService.InitiateGateway(c.Request.Context(), userID)
	if err != nil {
		ctrl.flowError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment initiated",
		Data:    initiation,
	})
}

// @Summary Verify gateway payment
// @Description Success callback: confirm the order, decrement stock, clear the cart
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payment body models.RazorpayVerifyRequest true "Gateway callback payload"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /payment/razorpay/verify [post]
func (ctrl *PaymentController) VerifyRazorpay(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.RazorpayVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	result, err := ctrl.paymentService.ConfirmGateway(c.Request.Context(), userID, req)
	if err != nil {
		ctrl.flowError(c, err)
		return
	}

	message := "Payment successful"
	if result.ReconciliationRequired {
		message = "Payment successful, but stock update needs attention. Contact support"
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    result,
	})
}

// @Summary Cancel gateway payment
// @Description Dismiss callback: the pending order is left for out-of-band reconciliation
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payment body models.RazorpayCancelRequest true "Cancelled order reference"
// @Success 200 {object} models.Response
// @Router /payment/razorpay/cancel [post]
func (ctrl *PaymentController) CancelRazorpay(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.RazorpayCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	result := ctrl.paymentService.CancelGateway(userID, req.OrderID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Payment cancelled",
		Data:    result,
	})
}

// @Summary Cash on delivery
// @Description Place the order with the COD surcharge; confirmed immediately
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /payment/cod [post]
func (ctrl *PaymentController) CashOnDelivery(c *gin.Context) {
	userID := c.GetInt("user_id")

	result, err := ctrl.paymentService.CashOnDelivery(c.Request.Context(), userID)
	if err != nil {
		ctrl.flowError(c, err)
		return
	}

	message := "Order placed"
	if result.ReconciliationRequired {
		message = "Order placed, but stock update needs attention. Contact support"
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    result,
	})
}

// @Summary WhatsApp order link
// @Description Prefilled conversation link with the order summary; no order record is created
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /payment/whatsapp-link [get]
func (ctrl *PaymentController) WhatsAppLink(c *gin.Context) {
	userID := c.GetInt("user_id")

	link, err := ctrl.paymentService.WhatsAppLink(c.Request.Context(), userID)
	if err != nil {
		ctrl.flowError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "WhatsApp link ready",
		Data:    gin.H{"link": link},
	})
}
