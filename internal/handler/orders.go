package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cafemanagement/internal/apperror"
	"cafemanagement/internal/dto"
	"cafemanagement/internal/middleware"
	"cafemanagement/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	var userID *uint
	if claims := middleware.GetClaims(c); claims != nil {
		userID = &claims.UserID
	}
	resp, err := h.svc.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List filters by ?status=Solicitado,En proceso — the kitchen views ask for
// one bucket at a time. No filter returns nothing; the caller must say what
// it wants.
func (h *OrdersHandler) List(c *gin.Context) {
	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}
	resp, err := h.svc.ListByStatuses(c.Request.Context(), statuses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine returns the order history of the authenticated user.
func (h *OrdersHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apperror.Detail(
			apperror.New(apperror.Unauthorized, "autenticación requerida")))
		return
	}
	resp, err := h.svc.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) ChangeStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.ChangeStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) AddItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.OrderItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
