package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/services"
)

type CartController struct {
	cartStore      *services.CartStore
	productService *services.ProductService
}

func NewCartController(cartStore *services.CartStore, productService *services.ProductService) *CartController {
	return &CartController{cartStore: cartStore, productService: productService}
}

// @Summary Get cart
// @Description Get the signed-in user's cart lines and totals
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved successfully",
		Data: gin.H{
			"lines":      ctrl.cartStore.Lines(c.Request.Context(), userID),
			"total":      ctrl.cartStore.Total(c.Request.Context(), userID),
			"item_count": ctrl.cartStore.ItemCount(c.Request.Context(), userID),
		},
	})
}

// @Summary Cart badge count
// @Description Get the summed quantity across cart lines
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/count [get]
func (ctrl *CartController) GetCount(c *gin.Context) {
	userID := c.GetInt("user_id")

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart count retrieved successfully",
		Data:    gin.H{"item_count": ctrl.cartStore.ItemCount(c.Request.Context(), userID)},
	})
}

// @Summary Add item to cart
// @Description Add a product to the cart; adding the same product again increments its quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body models.AddCartItemRequest true "Product to add"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	product, err := ctrl.productService.GetProductByID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Product not found",
		})
		return
	}

	if err := ctrl.cartStore.AddItem(c.Request.Context(), userID, product); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item added to cart",
		Data: gin.H{
			"item_count": ctrl.cartStore.ItemCount(c.Request.Context(), userID),
			"quantity":   ctrl.cartStore.QuantityOf(c.Request.Context(), userID, req.ProductID),
		},
	})
}

// @Summary Set line quantity
// @Description Set a line's quantity; zero or below removes the line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param quantity body models.SetQuantityRequest true "New quantity"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId} [patch]
func (ctrl *CartController) SetQuantity(c *gin.Context) {
	userID := c.GetInt("user_id")
	productID, _ := strconv.Atoi(c.Param("productId"))

	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   err.Error(),
		})
		return
	}

	ctrl.cartStore.SetQuantity(c.Request.Context(), userID, productID, req.Quantity)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Quantity updated",
		Data:    gin.H{"quantity": ctrl.cartStore.QuantityOf(c.Request.Context(), userID, productID)},
	})
}

// @Summary Increment line quantity
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId}/increment [post]
func (ctrl *CartController) Increment(c *gin.Context) {
	userID := c.GetInt("user_id")
	productID, _ := strconv.Atoi(c.Param("productId"))

	ctrl.cartStore.Increment(c.Request.Context(), userID, productID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Quantity updated",
		Data:    gin.H{"quantity": ctrl.cartStore.QuantityOf(c.Request.Context(), userID, productID)},
	})
}

// @Summary Decrement line quantity
// @Description Lower a line's quantity by one; quantity never drops below 1
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId}/decrement [post]
func (ctrl *CartController) Decrement(c *gin.Context) {
	userID := c.GetInt("user_id")
	productID, _ := strconv.Atoi(c.Param("productId"))

	ctrl.cartStore.Decrement(c.Request.Context(), userID, productID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Quantity updated",
		Data:    gin.H{"quantity": ctrl.cartStore.QuantityOf(c.Request.Context(), userID, productID)},
	})
}

// @Summary Remove item from cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{productId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	productID, _ := strconv.Atoi(c.Param("productId"))

	ctrl.cartStore.RemoveItem(c.Request.Context(), userID, productID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed from cart",
		Data:    gin.H{"item_count": ctrl.cartStore.ItemCount(c.Request.Context(), userID)},
	})
}

// @Summary Clear cart
// @Description Empty the cart and erase its persisted record
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) Clear(c *gin.Context) {
	userID := c.GetInt("user_id")

	ctrl.cartStore.Clear(c.Request.Context(), userID)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart cleared",
	})
}
