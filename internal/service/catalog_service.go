package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrForbidden       = errors.New("forbidden: user does not have permission for this action")
	ErrDuplicateReview = errors.New("product already reviewed")
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// CatalogService defines operations on the product catalog
type CatalogService interface {
	ListProducts(ctx context.Context, filters model.ProductFilters) (*model.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, sellerID string, req model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID, requesterID, requesterRole string, req model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID, requesterID, requesterRole string) error
	AddReview(ctx context.Context, productID, userID string, req model.AddReviewRequest) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(productRepo repository.ProductRepository, userRepo repository.UserRepository) CatalogService {
	return &catalogService{productRepo: productRepo, userRepo: userRepo}
}

// ListProducts returns one page of active products with pagination metadata
func (s *catalogService) ListProducts(ctx context.Context, filters model.ProductFilters) (*model.ProductPage, error) {
	if filters.Page < 1 {
		filters.Page = DefaultPage
	}
	if filters.Limit < 1 {
		filters.Limit = DefaultLimit
	}
	if filters.Limit > MaxLimit {
		filters.Limit = MaxLimit
	}

	products, total, err := s.productRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	totalPages := (total + filters.Limit - 1) / filters.Limit

	return &model.ProductPage{
		Products: products,
		Pagination: model.Pagination{
			CurrentPage:   filters.Page,
			TotalPages:    totalPages,
			TotalProducts: total,
			HasNext:       filters.Page < totalPages,
			HasPrev:       filters.Page > 1,
		},
	}, nil
}

// GetProduct returns an active product with reviews and seller identity
func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct adds a catalog entry owned by the given seller
func (s *catalogService) CreateProduct(ctx context.Context, sellerID string, req model.CreateProductRequest) (*model.Product, error) {
	now := time.Now()
	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Images:      req.Images,
		SellerID:    sellerID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}

	utils.Logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("seller_id", sellerID))
	return product, nil
}

// UpdateProduct applies a partial update. Only the owning seller or an admin
// may modify a product.
func (s *catalogService) UpdateProduct(ctx context.Context, productID, requesterID, requesterRole string, req model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if requesterRole != model.RoleAdmin && product.SellerID != requesterID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct soft-deletes: is_active drives public visibility, so the row
// survives for carts and reviews that still reference it.
func (s *catalogService) DeleteProduct(ctx context.Context, productID, requesterID, requesterRole string) error {
	product, err := s.productRepo.FindByID(ctx, productID, false)
	if err != nil {
		return fmt.Errorf("failed to find product for delete: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	if requesterRole != model.RoleAdmin && product.SellerID != requesterID {
		return ErrForbidden
	}

	if err := s.productRepo.SetActive(ctx, productID, false); err != nil {
		return fmt.Errorf("failed to soft-delete product: %w", err)
	}

	utils.Logger.Info("product deactivated", zap.String("product_id", productID))
	return nil
}

// AddReview appends a review and recomputes the product's aggregate rating.
// A user may review a given product at most once.
func (s *catalogService) AddReview(ctx context.Context, productID, userID string, req model.AddReviewRequest) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for review: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	reviewed, err := s.productRepo.HasUserReview(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if reviewed {
		return nil, ErrDuplicateReview
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewer: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	review := &model.Review{
		ProductID: productID,
		UserID:    userID,
		Name:      user.Name, // snapshot of the reviewer's name at submission time
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	rating, numReviews, err := s.productRepo.AddReview(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	product.Rating = rating
	product.NumReviews = numReviews
	product.Reviews = append([]model.Review{*review}, product.Reviews...)
	return product, nil
}
