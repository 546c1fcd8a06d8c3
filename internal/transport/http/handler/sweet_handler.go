package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sweetshop-api/internal/domain"
	"sweetshop-api/internal/service"
	resp "sweetshop-api/internal/transport/http/response"
)

type SweetHandler struct {
	svc *service.SweetService
}

func NewSweetHandler(svc *service.SweetService) *SweetHandler {
	return &SweetHandler{svc: svc}
}

type createSweetIn struct {
	Name     string   `json:"name"     binding:"required"`
	Price    *float64 `json:"price"    binding:"required,gte=0"`
	Category string   `json:"category" binding:"required"`
	Quantity *int     `json:"quantity" binding:"required,gte=0"`
}

// Create POST /api/sweets
func (h *SweetHandler) Create(c *gin.Context) {
	var in createSweetIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sw, err := h.svc.Create(c.Request.Context(), &domain.Sweet{
		Name:     in.Name,
		Price:    *in.Price,
		Category: in.Category,
		Quantity: *in.Quantity,
	})
	if err != nil {
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sw)
}

// List GET /api/sweets — 整表快照，无分页
func (h *SweetHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.FromError(c, err)
		return
	}
	if items == nil {
		items = []domain.Sweet{}
	}
	c.JSON(http.StatusOK, items)
}

// Search GET /api/sweets/search?name=&category=&minPrice=&maxPrice=
func (h *SweetHandler) Search(c *gin.Context) {
	f := domain.SweetFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}
	if v := c.Query("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			resp.Err(c, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		f.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			resp.Err(c, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		f.MaxPrice = &p
	}

	items, err := h.svc.Search(c.Request.Context(), f)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	if items == nil {
		items = []domain.Sweet{}
	}
	c.JSON(http.StatusOK, items)
}

type updateSweetIn struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"    binding:"omitempty,gte=0"`
	Category *string  `json:"category"`
}

// Update PATCH /api/sweets/:id — 只改 name/price/category，库存走 restock/purchase
func (h *SweetHandler) Update(c *gin.Context) {
	var in updateSweetIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sw, err := h.svc.Update(c.Request.Context(), c.Param("id"), domain.SweetPatch{
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
	})
	if err != nil {
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, sw)
}

// Delete DELETE /api/sweets/:id
func (h *SweetHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type amountIn struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// Restock POST /api/sweets/:id/restock（admin）
func (h *SweetHandler) Restock(c *gin.Context) {
	var in amountIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	sw, err := h.svc.Restock(c.Request.Context(), c.Param("id"), in.Amount)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, sw)
}

// Purchase POST /api/sweets/:id/purchase
func (h *SweetHandler) Purchase(c *gin.Context) {
	var in amountIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Err(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	sw, err := h.svc.Purchase(c.Request.Context(), c.Param("id"), in.Amount)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, sw)
}
