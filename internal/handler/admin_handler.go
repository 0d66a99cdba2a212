package handler

import (
	"errors"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler handles catalog mutation on the admin surface
type AdminHandler struct {
	service service.CatalogService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.CatalogService) *AdminHandler {
	return &AdminHandler{service: s}
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), userID, req)
	if err != nil {
		utils.Logger.Error("product creation failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error while creating product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	userRole, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), c.Param("id"), userID, userRole, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to update this product"})
		default:
			utils.Logger.Error("product update failed", zap.String("product_id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error while updating product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	userRole, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	err = h.service.DeleteProduct(c.Request.Context(), c.Param("id"), userID, userRole)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to delete this product"})
		default:
			utils.Logger.Error("product delete failed", zap.String("product_id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error while deleting product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}

// RegisterAdminRoutes registers the admin catalog routes. Both middlewares
// must be supplied; the admin check assumes the JWT middleware ran first.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, jwtAuthMW, adminMW gin.HandlerFunc) {
	adminGroup := rg.Group("/admin")
	adminGroup.Use(jwtAuthMW, adminMW)
	{
		adminGroup.POST("/products", h.CreateProduct)
		adminGroup.PUT("/products/:id", h.UpdateProduct)
		adminGroup.DELETE("/products/:id", h.DeleteProduct)
	}
}
