package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/services"
)

type CheckoutController struct {
	checkoutService *services.CheckoutService
	cartStore       *services.CartStore
	pricing         services.Pricing
}

func NewCheckoutController(checkoutService *services.CheckoutService, cartStore *services.CartStore, pricing services.Pricing) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
		cartStore:       cartStore,
		pricing:         pricing,
	}
}

// @Summary Checkout summary
// @Description Subtotal, shipping and total for the current cart
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/summary [get]
func (ctrl *CheckoutController) GetSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	if ctrl.cartStore.ItemCount(c.Request.Context(), userID) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Cart is empty",
		})
		return
	}

	quote := ctrl.pricing.Quote(ctrl.cartStore.Total(c.Request.Context(), userID), "")

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout summary",
		Data:    quote,
	})
}

// @Summary Submit shipping address
// @Description Validate the shipping form; on success the address is held for the payment step
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param address body models.CheckoutRequest true "Shipping address"
// @Success 200 {object} models.Response
// @Failure 422 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Submit(c *gin.Context) {
	userID := c.GetInt("user_id")

	if ctrl.cartStore.ItemCount(c.Request.Context(), userID) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Cart is empty",
		})
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	fieldErrors, err := ctrl.checkoutService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Failed to save shipping address",
		})
		return
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  fieldErrors,
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Shipping address saved",
	})
}
