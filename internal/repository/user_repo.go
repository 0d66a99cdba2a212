package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, role,
            notify_order_updates, notify_promotions, notify_newsletter, notify_security_alerts,
            profile_visibility, data_collection, third_party_sharing, analytics,
            created_at, updated_at`

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error)
	UpdateNotifications(ctx context.Context, id string, settings model.NotificationSettings) error
	UpdatePrivacy(ctx context.Context, id string, settings model.PrivacySettings) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

type userRepository struct {
	db PgxIface
}

// NewUserRepository creates a new UserRepository. It takes the PgxIface
// abstraction rather than *pgxpool.Pool directly so pgxmock can stand in
// during tests.
func NewUserRepository(db PgxIface) UserRepository {
	return &userRepository{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.Notifications.OrderUpdates, &user.Notifications.Promotions,
		&user.Notifications.Newsletter, &user.Notifications.SecurityAlerts,
		&user.Privacy.ProfileVisibility, &user.Privacy.DataCollection,
		&user.Privacy.ThirdPartySharing, &user.Privacy.Analytics,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, name, email, password_hash, role,
                notify_order_updates, notify_promotions, notify_newsletter, notify_security_alerts,
                profile_visibility, data_collection, third_party_sharing, analytics,
                created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, sql,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.Notifications.OrderUpdates, user.Notifications.Promotions,
		user.Notifications.Newsletter, user.Notifications.SecurityAlerts,
		user.Privacy.ProfileVisibility, user.Privacy.DataCollection,
		user.Privacy.ThirdPartySharing, user.Privacy.Analytics,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by their email address
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial name/email update and returns the new row
func (r *userRepository) UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error) {
	sql := `UPDATE users
            SET name = COALESCE($1, name), email = COALESCE($2, email), updated_at = NOW()
            WHERE id = $3 RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRow(ctx, sql, name, email, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateNotifications replaces the notification toggles
func (r *userRepository) UpdateNotifications(ctx context.Context, id string, settings model.NotificationSettings) error {
	sql := `UPDATE users
            SET notify_order_updates = $1, notify_promotions = $2, notify_newsletter = $3,
                notify_security_alerts = $4, updated_at = NOW()
            WHERE id = $5`
	cmdTag, err := r.db.Exec(ctx, sql,
		settings.OrderUpdates, settings.Promotions, settings.Newsletter, settings.SecurityAlerts, id)
	if err != nil {
		return fmt.Errorf("failed to update notification settings: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for notification settings update")
	}
	return nil
}

// UpdatePrivacy replaces the privacy settings
func (r *userRepository) UpdatePrivacy(ctx context.Context, id string, settings model.PrivacySettings) error {
	sql := `UPDATE users
            SET profile_visibility = $1, data_collection = $2, third_party_sharing = $3,
                analytics = $4, updated_at = NOW()
            WHERE id = $5`
	cmdTag, err := r.db.Exec(ctx, sql,
		settings.ProfileVisibility, settings.DataCollection, settings.ThirdPartySharing, settings.Analytics, id)
	if err != nil {
		return fmt.Errorf("failed to update privacy settings: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for privacy settings update")
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	sql := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for password update")
	}
	return nil
}
