package service

// In-memory repository implementations backing the service tests. They mimic
// the SQL repositories' contracts: nil for not-found, sentinel errors for
// constraint violations.

import (
	"context"
	"sort"

	"storefront/internal/model"
	"storefront/internal/repository"
)

type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id string, name, email *string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) UpdateNotifications(_ context.Context, id string, settings model.NotificationSettings) error {
	if u, ok := r.users[id]; ok {
		u.Notifications = settings
	}
	return nil
}

func (r *memUserRepo) UpdatePrivacy(_ context.Context, id string, settings model.PrivacySettings) error {
	if u, ok := r.users[id]; ok {
		u.Privacy = settings
	}
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	if u, ok := r.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

type memProductRepo struct {
	products map[string]*model.Product
	reviews  []model.Review
	nextID   int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*model.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *model.Product) error {
	c := *p
	r.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string, activeOnly bool) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || (activeOnly && !p.IsActive) {
		return nil, nil
	}
	c := *p
	c.Reviews = r.reviewsFor(id)
	return &c, nil
}

func (r *memProductRepo) reviewsFor(productID string) []model.Review {
	var out []model.Review
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out
}

func (r *memProductRepo) List(_ context.Context, filters model.ProductFilters) ([]model.Product, int, error) {
	var matched []model.Product
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if filters.Category != nil && *filters.Category != "" && p.Category != *filters.Category {
			continue
		}
		if filters.MinPrice != nil && p.Price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && p.Price > *filters.MaxPrice {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filters.Page - 1) * filters.Limit
	if start >= total {
		return nil, total, nil
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *memProductRepo) Update(_ context.Context, p *model.Product) error {
	c := *p
	r.products[p.ID] = &c
	return nil
}

func (r *memProductRepo) SetActive(_ context.Context, id string, active bool) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (r *memProductRepo) HasUserReview(_ context.Context, productID, userID string) (bool, error) {
	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) AddReview(_ context.Context, review *model.Review) (float64, int, error) {
	for _, rv := range r.reviews {
		if rv.ProductID == review.ProductID && rv.UserID == review.UserID {
			return 0, 0, repository.ErrDuplicateReview
		}
	}
	r.nextID++
	review.ID = r.nextID
	r.reviews = append(r.reviews, *review)

	sum, count := 0.0, 0
	for _, rv := range r.reviews {
		if rv.ProductID == review.ProductID {
			sum += float64(rv.Rating)
			count++
		}
	}
	rating := sum / float64(count)
	p := r.products[review.ProductID]
	p.Rating = rating
	p.NumReviews = count
	return rating, count, nil
}
