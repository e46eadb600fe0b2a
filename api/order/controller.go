/*
Package order - order API controller.

Responsibilities:
 1. Parse and validate HTTP requests.
 2. Delegate to the application service.
 3. Use the response package for envelopes and error mapping.

Binding errors return 400 via response.HandleError; business errors go
through response.HandleAppError, which maps domain errors to stable
codes and HTTP statuses.
*/
package order

import (
	"net/http"

	"shopcore/api/response"
	orderapp "shopcore/application/order"
	"shopcore/domain/order"
	"shopcore/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller order controller.
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController creates the order controller.
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes registers order routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("/checkout", c.Checkout)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.GET("/customer/:customerId", c.GetCustomerOrders)
		orderGroup.GET("/guest/:sessionId", c.GetGuestOrders)
		orderGroup.POST("/:id/payment", c.ConfirmPayment)
		orderGroup.PUT("/:id/status", c.UpdateStatus)
	}
}

// Checkout creates an order from the owner's cart.
// POST /api/v1/orders/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.orderService.Checkout(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, resp, "order created successfully")
}

// GetOrder returns one order.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	resp, err := c.orderService.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "order retrieved successfully")
}

// GetCustomerOrders lists a customer's orders.
// GET /api/v1/orders/customer/:customerId
func (c *Controller) GetCustomerOrders(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	owner, err := order.NewCustomerRef(customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	c.listOwnerOrders(ctx, owner)
}

// GetGuestOrders lists a guest session's orders.
// GET /api/v1/orders/guest/:sessionId
func (c *Controller) GetGuestOrders(ctx *gin.Context) {
	sessionID := ctx.Param("sessionId")
	if sessionID == "" {
		response.HandleError(ctx, errors.BadRequest("session ID is required"), "session ID is required", http.StatusBadRequest)
		return
	}

	owner, err := order.NewGuestRef(sessionID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	c.listOwnerOrders(ctx, owner)
}

func (c *Controller) listOwnerOrders(ctx *gin.Context, owner order.OwnerRef) {
	orders, err := c.orderService.GetOwnerOrders(ctx.Request.Context(), owner)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// ConfirmPayment marks an order as paid.
// POST /api/v1/orders/:id/payment
//
// Payment webhooks may deliver more than once; a duplicate call gets
// ALREADY_PAID with 409 and no inventory effect.
func (c *Controller) ConfirmPayment(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var req orderapp.ConfirmPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.orderService.ConfirmPayment(ctx.Request.Context(), orderID, req.PaymentReference)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "payment confirmed successfully")
}

// UpdateStatus moves an order along the lifecycle.
// PUT /api/v1/orders/:id/status
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.orderService.UpdateStatus(ctx.Request.Context(), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "order status updated successfully")
}
