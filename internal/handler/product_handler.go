package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductHandler handles the public catalog surface
type ProductHandler struct {
	service service.CatalogService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filters model.ProductFilters

	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if minPriceParam := c.Query("minPrice"); minPriceParam != "" {
		minPrice, err := strconv.ParseFloat(minPriceParam, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid minPrice"})
			return
		}
		filters.MinPrice = &minPrice
	}
	if maxPriceParam := c.Query("maxPrice"); maxPriceParam != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceParam, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid maxPrice"})
			return
		}
		filters.MaxPrice = &maxPrice
	}
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	filters.Sort = c.DefaultQuery("sort", "created_at")
	filters.Order = c.DefaultQuery("order", "desc")

	if pageParam := c.Query("page"); pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid page"})
			return
		}
		filters.Page = page
	}
	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid limit"})
			return
		}
		filters.Limit = limit
	}

	page, err := h.service.ListProducts(c.Request.Context(), filters)
	if err != nil {
		utils.Logger.Error("product listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error while fetching products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   page.Products,
		"pagination": page.Pagination,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
			return
		}
		utils.Logger.Error("product fetch failed", zap.String("product_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error while fetching product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *ProductHandler) AddReview(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.service.AddReview(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateReview):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Product already reviewed"})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
		default:
			utils.Logger.Error("review submission failed",
				zap.String("product_id", c.Param("id")),
				zap.String("user_id", userID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error while adding review"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Review added successfully",
		"rating":      product.Rating,
		"num_reviews": product.NumReviews,
	})
}

// RegisterProductRoutes registers the public catalog routes
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup, jwtAuthMW gin.HandlerFunc) {
	productGroup := rg.Group("/products")
	{
		productGroup.GET("", h.ListProducts)
		productGroup.GET("/:id", h.GetProduct)
		productGroup.POST("/:id/reviews", jwtAuthMW, h.AddReview)
	}
}
