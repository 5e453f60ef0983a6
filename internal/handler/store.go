package handler

import (
	"errors"
	"net/http"

	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StoreHandler interface {
	Get(c *gin.Context)
	Create(c *gin.Context)
	Put(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

type storeHandler struct {
	stores service.StoreService
	log    *zap.Logger
}

func NewStoreHandler(stores service.StoreService, log *zap.Logger) StoreHandler {
	return &storeHandler{stores: stores, log: log}
}

func (h *storeHandler) Get(c *gin.Context) {
	store, err := h.stores.Get(c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		h.log.Error("Failed to get store", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get store"})
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *storeHandler) Create(c *gin.Context) {
	store, err := h.stores.Create(c.Param("name"))
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "store already exists"})
			return
		}
		h.log.Error("Failed to create store", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create store"})
		return
	}

	c.JSON(http.StatusCreated, store)
}

func (h *storeHandler) Put(c *gin.Context) {
	store, _, err := h.stores.Put(c.Param("name"))
	if err != nil {
		h.log.Error("Failed to upsert store", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save store"})
		return
	}

	c.JSON(http.StatusOK, store)
}

func (h *storeHandler) Delete(c *gin.Context) {
	if err := h.stores.Delete(c.Param("name")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		h.log.Error("Failed to delete store", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete store"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "store deleted"})
}

func (h *storeHandler) List(c *gin.Context) {
	stores, err := h.stores.List()
	if err != nil {
		h.log.Error("Failed to list stores", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list stores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stores": stores})
}
