package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

var productRowColumns = []string{
	"id", "name", "description", "price", "category", "stock", "images",
	"rating", "num_reviews", "seller_id", "seller_name", "is_active", "created_at", "updated_at",
}

func sampleProduct() *model.Product {
	now := time.Now()
	return &model.Product{
		ID:          "prod-1",
		Name:        "Wireless Headphones",
		Description: "Noise canceling over-ear headphones",
		Price:       199.99,
		Category:    "Electronics",
		Stock:       10,
		Images:      []string{"https://example.com/headphones.jpg"},
		Rating:      4.5,
		NumReviews:  2,
		SellerID:    "user-1",
		SellerName:  "Alice",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productRow(p *model.Product) *pgxmock.Rows {
	return pgxmock.NewRows(productRowColumns).AddRow(
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, p.Images,
		p.Rating, p.NumReviews, p.SellerID, p.SellerName, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
}

func TestProductRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := sampleProduct()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1 AND p.is_active = TRUE")).
		WithArgs(p.ID).
		WillReturnRows(productRow(p))
	mock.ExpectQuery(regexp.QuoteMeta("FROM reviews WHERE product_id = $1")).
		WithArgs(p.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "user_id", "name", "rating", "comment", "created_at"}).
			AddRow(int64(1), p.ID, "user-2", "Bob", 5, "Great sound", time.Now()))

	repo := NewProductRepository(mock)
	found, err := repo.FindByID(context.Background(), p.ID, true)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, p.Name, found.Name)
	assert.Len(t, found.Reviews, 1)
	assert.Equal(t, "Bob", found.Reviews[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewProductRepository(mock)
	found, err := repo.FindByID(context.Background(), "missing", true)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_FiltersAndPagination(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := sampleProduct()
	category := "Electronics"
	minPrice := 50.0
	filters := model.ProductFilters{
		Category: &category,
		MinPrice: &minPrice,
		Sort:     "price",
		Order:    "asc",
		Page:     2,
		Limit:    12,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products p WHERE p.is_active = TRUE AND p.category = $1 AND p.price >= $2")).
		WithArgs(category, minPrice).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.price ASC LIMIT $3 OFFSET $4")).
		WithArgs(category, minPrice, 12, 12).
		WillReturnRows(productRow(p))

	repo := NewProductRepository(mock)
	products, total, err := repo.List(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_UnknownSortFallsBackToCreatedAt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	filters := model.ProductFilters{Sort: "price; DROP TABLE products", Page: 1, Limit: 12}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products p WHERE p.is_active = TRUE")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.created_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(12, 0).
		WillReturnRows(pgxmock.NewRows(productRowColumns))

	repo := NewProductRepository(mock)
	products, total, err := repo.List(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_SetActive_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET is_active = $1")).
		WithArgs(false, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewProductRepository(mock)
	assert.Error(t, repo.SetActive(context.Background(), "missing", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_HasUserReview(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("prod-1", "user-2").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewProductRepository(mock)
	exists, err := repo.HasUserReview(context.Background(), "prod-1", "user-2")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_AddReview(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	review := &model.Review{
		ProductID: "prod-1",
		UserID:    "user-2",
		Name:      "Bob",
		Rating:    4,
		Comment:   "Solid product",
		CreatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(review.ProductID, review.UserID, review.Name, review.Rating, review.Comment, review.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(regexp.QuoteMeta("SET num_reviews = s.cnt, rating = s.avg")).
		WithArgs(review.ProductID).
		WillReturnRows(pgxmock.NewRows([]string{"rating", "num_reviews"}).AddRow(4.5, 3))
	mock.ExpectCommit()
	mock.ExpectRollback()

	repo := NewProductRepository(mock)
	rating, numReviews, err := repo.AddReview(context.Background(), review)
	require.NoError(t, err)
	assert.Equal(t, int64(7), review.ID)
	assert.Equal(t, 4.5, rating)
	assert.Equal(t, 3, numReviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_AddReview_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	review := &model.Review{
		ProductID: "prod-1",
		UserID:    "user-2",
		Name:      "Bob",
		Rating:    4,
		Comment:   "Again",
		CreatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews")).
		WithArgs(review.ProductID, review.UserID, review.Name, review.Rating, review.Comment, review.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	repo := NewProductRepository(mock)
	_, _, err = repo.AddReview(context.Background(), review)
	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.NoError(t, mock.ExpectationsWereMet())
}
