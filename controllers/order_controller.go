package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"proshop/models"
)

// OrderController preserves the order route contracts. The handlers are
// acknowledgement stubs: requests bind against the Order document shape
// but nothing is persisted yet.
type OrderController struct{}

func NewOrderController() *OrderController {
	return &OrderController{}
}

// @Summary Create order
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Param request body models.Order true "Order"
// @Success 200 {string} string "Add order items"
// @Router /api/orders [post]
func (ctrl *OrderController) AddOrderItems(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid order payload"})
		return
	}
	c.String(http.StatusOK, "Add order items")
}

// @Summary Get own orders
// @Tags Orders
// @Security BearerAuth
// @Success 200 {string} string "get my orders"
// @Router /api/orders/myorders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	c.String(http.StatusOK, "get my orders")
}

// @Summary Get order by ID
// @Tags Orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {string} string "Get order by ID"
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	c.String(http.StatusOK, "Get order by ID")
}

// @Summary Mark order paid
// @Tags Orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {string} string "Update order to paid"
// @Router /api/orders/{id}/pay [put]
func (ctrl *OrderController) UpdateOrderToPaid(c *gin.Context) {
	c.String(http.StatusOK, "Update order to paid")
}

// @Summary Mark order delivered
// @Tags Admin - Orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {string} string "Update order to delivered"
// @Router /api/orders/{id}/deliver [put]
func (ctrl *OrderController) UpdateOrderToDelivered(c *gin.Context) {
	c.String(http.StatusOK, "Update order to delivered")
}

// @Summary List all orders
// @Tags Admin - Orders
// @Security BearerAuth
// @Success 200 {string} string "Get all orders"
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	c.String(http.StatusOK, "Get all orders")
}
