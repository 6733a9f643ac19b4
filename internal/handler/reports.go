package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cafemanagement/internal/dto"
	"cafemanagement/internal/middleware"
	"cafemanagement/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) TotalSales(c *gin.Context) {
	var req dto.SalesReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.TotalSales(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) Generate(c *gin.Context) {
	var req dto.SalesReportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var generatedBy *uint
	if claims := middleware.GetClaims(c); claims != nil {
		generatedBy = &claims.UserID
	}
	resp, err := h.svc.Generate(c.Request.Context(), req, generatedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReportsHandler) TopProducts(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit inválido"})
			return
		}
		limit = parsed
	}
	products, err := h.svc.TopProducts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TopProductsResponse{Products: products})
}

func (h *ReportsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListReports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
