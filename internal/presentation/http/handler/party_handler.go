package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feedworks/feedmill-api/internal/application/service"
	"github.com/feedworks/feedmill-api/internal/domain/enum"
	"github.com/feedworks/feedmill-api/internal/domain/repository"
	"github.com/feedworks/feedmill-api/internal/presentation/http/dto/response"
	"github.com/feedworks/feedmill-api/pkg/pagination"
)

// PartyHandler handles party-related HTTP requests
type PartyHandler struct {
	partyService *service.PartyService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(partyService *service.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

// List handles listing parties
func (h *PartyHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PartyFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.PartyStatus(statusInt)
			params.Status = &status
		}
	}

	parties, total, err := h.partyService.ListParties(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(parties, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Parties retrieved successfully", result)
}

// Get handles retrieving a single party
func (h *PartyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid party ID")
		return
	}

	party, err := h.partyService.GetParty(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party retrieved successfully", party)
}

// Create handles registering a new party
func (h *PartyHandler) Create(c *gin.Context) {
	actor := GetActor(c)
	if actor == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CompanyName         string  `json:"company_name" binding:"required"`
		Address             string  `json:"address" binding:"required"`
		ContactPersonNumber string  `json:"contact_person_number" binding:"required"`
		Limit               float64 `json:"limit"`
		DiscountPercent     float64 `json:"discount_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), *actor, &service.CreatePartyInput{
		CompanyName:         req.CompanyName,
		Address:             req.Address,
		ContactPersonNumber: req.ContactPersonNumber,
		Limit:               req.Limit,
		DiscountPercent:     req.DiscountPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Party submitted for approval", party)
}

// Resolve handles approving or rejecting a pending party
func (h *PartyHandler) Resolve(c *gin.Context) {
	actor := GetActor(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid party ID")
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	party, err := h.partyService.ResolveParty(c.Request.Context(), *actor, id, req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party resolved successfully", party)
}

// Update handles editing a party's contact details and credit terms
func (h *PartyHandler) Update(c *gin.Context) {
	actor := GetActor(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid party ID")
		return
	}

	var req struct {
		Address             *string  `json:"address"`
		ContactPersonNumber *string  `json:"contact_person_number"`
		Limit               *float64 `json:"limit"`
		DiscountPercent     *float64 `json:"discount_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), *actor, id, &service.UpdatePartyInput{
		Address:             req.Address,
		ContactPersonNumber: req.ContactPersonNumber,
		Limit:               req.Limit,
		DiscountPercent:     req.DiscountPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party updated successfully", party)
}

// Delete handles removing a party
func (h *PartyHandler) Delete(c *gin.Context) {
	actor := GetActor(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid party ID")
		return
	}

	if err := h.partyService.DeleteParty(c.Request.Context(), *actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
