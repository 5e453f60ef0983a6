package handler

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ItemHandler interface {
	Get(c *gin.Context)
	Create(c *gin.Context)
	Put(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

type itemHandler struct {
	items service.ItemService
	log   *zap.Logger
}

func NewItemHandler(items service.ItemService, log *zap.Logger) ItemHandler {
	return &itemHandler{items: items, log: log}
}

type ItemRequest struct {
	Price   float64 `json:"price" binding:"required"`
	StoreID int64   `json:"store_id" binding:"required"`
}

func (h *itemHandler) Get(c *gin.Context) {
	item, err := h.items.Get(c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.log.Error("Failed to get item", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *itemHandler) Create(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Create(c.Param("name"), req.Price, req.StoreID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "item already exists"})
			return
		}
		h.log.Error("Failed to create item", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *itemHandler) Put(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, _, err := h.items.Put(c.Param("name"), req.Price, req.StoreID)
	if err != nil {
		h.log.Error("Failed to upsert item", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *itemHandler) Delete(c *gin.Context) {
	if err := h.items.Delete(c.Param("name")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.log.Error("Failed to delete item", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

// List degrades gracefully for anonymous callers: authenticated requests
// get full records, the rest get names plus a hint to log in.
func (h *itemHandler) List(c *gin.Context) {
	items, err := h.items.List()
	if err != nil {
		h.log.Error("Failed to list items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}

	if _, ok := middleware.CurrentUserID(c); ok {
		c.JSON(http.StatusOK, gin.H{"items": items})
		return
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	c.JSON(http.StatusOK, gin.H{
		"items":   names,
		"message": "More data available if you log in",
	})
}
