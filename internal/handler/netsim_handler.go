package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serdarm09/factory-tracker-sub001/internal/netsim"
	"github.com/serdarm09/factory-tracker-sub001/internal/service"
)

type NetSimHandler struct {
	svc *service.NetSimService
}

func NewNetSimHandler(svc *service.NetSimService) *NetSimHandler {
	return &NetSimHandler{svc: svc}
}

// bridgeError maps client failures to HTTP responses. Conflicts are the
// caller's problem; everything else is the bridge's.
func bridgeError(c *gin.Context, err error) {
	if netsim.IsKind(err, netsim.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"code": 10003, "message": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"code": 50201, "message": err.Error()})
}

func (h *NetSimHandler) Status(c *gin.Context) {
	info, err := h.svc.Status(c.Request.Context())
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": info})
}

type connectRequest struct {
	DatabaseFile string `json:"database_file" binding:"required"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

func (h *NetSimHandler) Connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	info, err := h.svc.Connect(c.Request.Context(), req.DatabaseFile, req.Username, req.Password)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": info})
}

func (h *NetSimHandler) ListDatabases(c *gin.Context) {
	files, err := h.svc.ListDatabaseFiles(c.Request.Context(), c.Query("path"))
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": files})
}

func (h *NetSimHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	onlyOpen := c.DefaultQuery("only_open", "false") == "true"

	orders, err := h.svc.GetOrders(c.Request.Context(), limit, offset, onlyOpen)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": orders, "limit": limit, "offset": offset}})
}

func (h *NetSimHandler) OrderCount(c *gin.Context) {
	onlyOpen := c.DefaultQuery("only_open", "false") == "true"
	count, err := h.svc.GetOrderCount(c.Request.Context(), onlyOpen)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"count": count}})
}

func (h *NetSimHandler) NewOrders(c *gin.Context) {
	minutes, _ := strconv.Atoi(c.DefaultQuery("minutes", "60"))
	orders, err := h.svc.GetNewOrders(c.Request.Context(), minutes)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": orders}})
}

func (h *NetSimHandler) OrderLines(c *gin.Context) {
	orderNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid order number"})
		return
	}
	lines, err := h.svc.GetOrderDetails(c.Request.Context(), orderNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": lines}})
}

type deliveryDateRequest struct {
	DeliveryDate string `json:"delivery_date" binding:"required"`
}

func (h *NetSimHandler) UpdateDeliveryDate(c *gin.Context) {
	orderNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid order number"})
		return
	}
	var req deliveryDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "delivery_date must be YYYY-MM-DD"})
		return
	}
	if err := h.svc.UpdateDeliveryDate(c.Request.Context(), orderNo, date); err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *NetSimHandler) ImportOrder(c *gin.Context) {
	orderNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid order number"})
		return
	}
	actorID := c.GetString("user_id")
	if actorID == "" {
		actorID = "system"
	}
	result, err := h.svc.ImportOrderByNo(c.Request.Context(), orderNo, actorID)
	if err != nil {
		if netsim.IsKind(err, netsim.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"code": 10003, "message": err.Error(), "data": result})
			return
		}
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": result})
}

func (h *NetSimHandler) GetCustomer(c *gin.Context) {
	customerNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid customer number"})
		return
	}
	customer, err := h.svc.GetCustomer(c.Request.Context(), customerNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": customer})
}

func (h *NetSimHandler) GetProduct(c *gin.Context) {
	stockNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid stock number"})
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), stockNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": product})
}

func (h *NetSimHandler) ProductRecipe(c *gin.Context) {
	stockNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid stock number"})
		return
	}
	lines, err := h.svc.GetProductRecipe(c.Request.Context(), stockNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": lines}})
}

func (h *NetSimHandler) ListRecipes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	recipes, err := h.svc.GetRecipes(c.Request.Context(), limit, offset, c.Query("search"))
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": recipes, "limit": limit, "offset": offset}})
}

func (h *NetSimHandler) RecipeCount(c *gin.Context) {
	count, err := h.svc.GetRecipeCount(c.Request.Context())
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"count": count}})
}

func (h *NetSimHandler) RecipeRevisions(c *gin.Context) {
	recipeNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid recipe number"})
		return
	}
	revisions, err := h.svc.GetRecipeRevisions(c.Request.Context(), recipeNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": revisions}})
}

func (h *NetSimHandler) RecipeDetails(c *gin.Context) {
	recipeNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid recipe number"})
		return
	}
	lines, err := h.svc.GetRecipeDetailsByRecipeNo(c.Request.Context(), recipeNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": lines}})
}

func (h *NetSimHandler) RevisionDetails(c *gin.Context) {
	revisionNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid revision number"})
		return
	}
	lines, err := h.svc.GetRecipeDetails(c.Request.Context(), revisionNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": lines}})
}

func (h *NetSimHandler) SubDetails(c *gin.Context) {
	detailNo, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "invalid detail number"})
		return
	}
	subLines, err := h.svc.GetRecipeSubDetails(c.Request.Context(), detailNo)
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": subLines}})
}

func (h *NetSimHandler) ListTables(c *gin.Context) {
	tables, err := h.svc.GetTables(c.Request.Context())
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": tables}})
}

func (h *NetSimHandler) TableColumns(c *gin.Context) {
	columns, err := h.svc.GetTableColumns(c.Request.Context(), c.Param("name"))
	if err != nil {
		bridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"items": columns}})
}
