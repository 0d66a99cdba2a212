package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateReview is returned when the unique (product_id, user_id)
// constraint rejects a second review from the same user.
var ErrDuplicateReview = errors.New("user already reviewed this product")

// sortColumns whitelists the listing sort fields. Anything else falls back
// to created_at; ordering by raw user input would be an injection vector.
var sortColumns = map[string]string{
	"created_at": "p.created_at",
	"price":      "p.price",
	"rating":     "p.rating",
	"name":       "p.name",
}

// ProductRepository defines operations for catalog data
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string, activeOnly bool) (*model.Product, error)
	List(ctx context.Context, filters model.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	HasUserReview(ctx context.Context, productID, userID string) (bool, error)
	AddReview(ctx context.Context, review *model.Review) (float64, int, error)
}

type productRepository struct {
	db PgxIface
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db PgxIface) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (id, name, description, price, category, stock, images,
                rating, num_reviews, seller_id, is_active, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, sql,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Stock, p.Images,
		p.Rating, p.NumReviews, p.SellerID, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product with its reviews and seller name. When
// activeOnly is set, soft-deleted products are treated as missing.
func (r *productRepository) FindByID(ctx context.Context, id string, activeOnly bool) (*model.Product, error) {
	sql := `SELECT p.id, p.name, p.description, p.price, p.category, p.stock, p.images,
                   p.rating, p.num_reviews, p.seller_id, u.name, p.is_active, p.created_at, p.updated_at
            FROM products p JOIN users u ON p.seller_id = u.id
            WHERE p.id = $1`
	if activeOnly {
		sql += ` AND p.is_active = TRUE`
	}

	p := &model.Product{}
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &p.Images,
		&p.Rating, &p.NumReviews, &p.SellerID, &p.SellerName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	reviews, err := r.findReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews
	return p, nil
}

func (r *productRepository) findReviews(ctx context.Context, productID string) ([]model.Review, error) {
	sql := `SELECT id, product_id, user_id, name, rating, comment, created_at
            FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}

// List retrieves one page of active products matching the filters, plus the
// total match count for the pagination metadata.
func (r *productRepository) List(ctx context.Context, filters model.ProductFilters) ([]model.Product, int, error) {
	var where strings.Builder
	where.WriteString(" WHERE p.is_active = TRUE")
	args := []interface{}{}
	argCount := 1

	if filters.Category != nil && *filters.Category != "" {
		where.WriteString(fmt.Sprintf(" AND p.category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.MinPrice != nil {
		where.WriteString(fmt.Sprintf(" AND p.price >= $%d", argCount))
		args = append(args, *filters.MinPrice)
		argCount++
	}
	if filters.MaxPrice != nil {
		where.WriteString(fmt.Sprintf(" AND p.price <= $%d", argCount))
		args = append(args, *filters.MaxPrice)
		argCount++
	}
	if filters.Search != nil && *filters.Search != "" {
		where.WriteString(fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}

	countQuery := "SELECT COUNT(*) FROM products p" + where.String()
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sortCol, ok := sortColumns[filters.Sort]
	if !ok {
		sortCol = "p.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filters.Order, "asc") {
		direction = "ASC"
	}

	var query strings.Builder
	query.WriteString(`SELECT p.id, p.name, p.description, p.price, p.category, p.stock, p.images,
                   p.rating, p.num_reviews, p.seller_id, u.name, p.is_active, p.created_at, p.updated_at
            FROM products p JOIN users u ON p.seller_id = u.id`)
	query.WriteString(where.String())
	query.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortCol, direction))
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, filters.Limit, (filters.Page-1)*filters.Limit)

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &p.Images,
			&p.Rating, &p.NumReviews, &p.SellerID, &p.SellerName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, total, nil
}

// Update writes the full product row
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	sql := `UPDATE products
            SET name = $1, description = $2, price = $3, category = $4, stock = $5,
                images = $6, is_active = $7, updated_at = NOW()
            WHERE id = $8 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		p.Name, p.Description, p.Price, p.Category, p.Stock, p.Images, p.IsActive, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product not found for update")
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// SetActive flips the soft-delete flag
func (r *productRepository) SetActive(ctx context.Context, id string, active bool) error {
	sql := `UPDATE products SET is_active = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, active, id)
	if err != nil {
		return fmt.Errorf("failed to set product active flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found for delete")
	}
	return nil
}

// HasUserReview reports whether the user already reviewed the product
func (r *productRepository) HasUserReview(ctx context.Context, productID, userID string) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, sql, productID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return exists, nil
}

// AddReview inserts the review and recomputes the product's rating and review
// count in the same transaction. Returns the recomputed values.
func (r *productRepository) AddReview(ctx context.Context, review *model.Review) (float64, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin review transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertSQL := `INSERT INTO reviews (product_id, user_id, name, rating, comment, created_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRow(ctx, insertSQL,
		review.ProductID, review.UserID, review.Name, review.Rating, review.Comment, review.CreatedAt,
	).Scan(&review.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, 0, ErrDuplicateReview
		}
		return 0, 0, fmt.Errorf("failed to insert review: %w", err)
	}

	// rating = mean over all reviews including the new one
	updateSQL := `UPDATE products p
            SET num_reviews = s.cnt, rating = s.avg, updated_at = NOW()
            FROM (SELECT COUNT(*) AS cnt, AVG(rating)::float8 AS avg FROM reviews WHERE product_id = $1) s
            WHERE p.id = $1 RETURNING p.rating, p.num_reviews`
	var rating float64
	var numReviews int
	if err := tx.QueryRow(ctx, updateSQL, review.ProductID).Scan(&rating, &numReviews); err != nil {
		return 0, 0, fmt.Errorf("failed to recompute product rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit review transaction: %w", err)
	}
	return rating, numReviews, nil
}
