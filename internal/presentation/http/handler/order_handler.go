package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/application/service"
	"github.com/feedworks/feedmill-api/internal/domain/entity"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/internal/presentation/http/dto/request"
	"github.com/feedworks/feedmill-api/internal/presentation/http/dto/response"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService   *service.OrderService
	invoiceService *service.InvoiceService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, invoiceService *service.InvoiceService) *OrderHandler {
	return &OrderHandler{orderService: orderService, invoiceService: invoiceService}
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if cursor := c.Query("cursor"); cursor != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	// Salesmen only see their own orders.
	if actor.Role == enum.RoleSalesman {
		params.PlacedBy = &actor.UserID
	}

	if orderNoStr := c.Query("order_no"); orderNoStr != "" {
		if orderNo, err := strconv.ParseInt(orderNoStr, 10, 64); err == nil {
			params.OrderNo = &orderNo
		}
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}

	if partyIDStr := c.Query("party_id"); partyIDStr != "" {
		if partyID, err := uuid.Parse(partyIDStr); err == nil {
			params.PartyID = &partyID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// listWithCursor handles listing orders with cursor-based pagination
func (h *OrderHandler) listWithCursor(c *gin.Context) {
	actor := GetActor(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &repository.OrderCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
	}

	if actor.Role == enum.RoleSalesman {
		params.PlacedBy = &actor.UserID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}

	if partyIDStr := c.Query("party_id"); partyIDStr != "" {
		if partyID, err := uuid.Parse(partyIDStr); err == nil {
			params.PartyID = &partyID
		}
	}

	orders, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	cursorPagination, pageItems := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.Order) string { return o.ID.String() },
		func(o entity.Order) time.Time { return o.CreatedAt },
	)
	response.Success(c, 200, "Orders retrieved successfully", pagination.NewCursorPaginatedResult(pageItems, cursorPagination))
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	input := &service.CreateOrderInput{
		PartyID:         req.PartyID,
		Items:           items,
		DiscountPercent: req.DiscountPercent,
		AdvanceAmount:   req.AdvanceAmount,
		PaymentMode:     req.PaymentMode,
		Notes:           req.Notes,
	}

	if req.DueDate != nil && *req.DueDate != "" {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date, expected YYYY-MM-DD")
			return
		}
		input.DueDate = &dueDate
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), *actor, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed successfully", order)
}

// Get handles retrieving a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// ListDue handles listing orders with an outstanding due
func (h *OrderHandler) ListDue(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	orders, total, err := h.orderService.GetDueOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Due orders retrieved successfully", result)
}

func (h *OrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

// Forward handles forwarding a placed order to the authorizer
func (h *OrderHandler) Forward(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Forward(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order forwarded successfully", order)
}

// AssignWarehouse handles assigning the fulfilling plant
func (h *OrderHandler) AssignWarehouse(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req request.AssignWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.AssignWarehouse(c.Request.Context(), *actor, id, req.WarehouseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Warehouse assigned successfully", order)
}

// ConfirmAvailability handles the plant's stock confirmation
func (h *OrderHandler) ConfirmAvailability(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.ConfirmAvailability(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Availability confirmed successfully", order)
}

// Approve handles approving the warehouse assignment
func (h *OrderHandler) Approve(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.ApproveWarehouse(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order approved successfully", order)
}

// ForwardToPlant handles handing the approved order to the plant head
func (h *OrderHandler) ForwardToPlant(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.ForwardToPlant(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order forwarded to plant successfully", order)
}

// Dispatch handles releasing the goods with transport details
func (h *OrderHandler) Dispatch(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req request.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Dispatch(c.Request.Context(), *actor, id, &service.DispatchInput{
		DriverName:       req.DriverName,
		DriverContact:    req.DriverContact,
		TransportCompany: req.TransportCompany,
		VehicleNumber:    req.VehicleNumber,
		DispatchDocs:     req.DispatchDocs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order dispatched successfully", order)
}

// ConfirmDelivery handles marking the order delivered
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.ConfirmDelivery(c.Request.Context(), *actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery confirmed successfully", order)
}

// Cancel handles cancelling an order with a mandatory reason
func (h *OrderHandler) Cancel(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req request.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cancellation reason is required")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), *actor, id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order cancelled", order)
}

// SubmitAdvancePayment handles recording an advance payment
func (h *OrderHandler) SubmitAdvancePayment(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req request.AdvancePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.SubmitAdvancePayment(c.Request.Context(), *actor, id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Advance payment submitted for approval", order)
}

// ResolveAdvancePayment handles approving or rejecting an advance payment
func (h *OrderHandler) ResolveAdvancePayment(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req request.ResolvePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.ResolveAdvancePayment(c.Request.Context(), *actor, id, req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Advance payment resolved", order)
}

// RecordDuePayment handles recording money received against the due
func (h *OrderHandler) RecordDuePayment(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req request.DuePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.RecordDuePayment(c.Request.Context(), *actor, id, &service.DuePaymentInput{
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Due payment recorded for approval", order)
}

// ResolveDuePayment handles approving or rejecting a recorded due payment
func (h *OrderHandler) ResolveDuePayment(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req request.ResolvePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.ResolveDuePayment(c.Request.Context(), *actor, id, req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Due payment resolved", order)
}

// GenerateInvoice handles generating an advance or due invoice snapshot
func (h *OrderHandler) GenerateInvoice(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	kind := service.InvoiceKind(c.Param("kind"))

	order, err := h.invoiceService.Generate(c.Request.Context(), *actor, id, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice generated successfully", order)
}

// Delete handles deleting an order still in the placed stage
func (h *OrderHandler) Delete(c *gin.Context) {
	actor := GetActor(c)
	id, ok := h.orderID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), *actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
