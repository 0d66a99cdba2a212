package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// User represents a registered account
type User struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	PasswordHash  string               `json:"-"` // Never expose the hash in JSON responses
	Role          string               `json:"role"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NotificationSettings are the per-user notification toggles
type NotificationSettings struct {
	OrderUpdates   bool `json:"order_updates"`
	Promotions     bool `json:"promotions"`
	Newsletter     bool `json:"newsletter"`
	SecurityAlerts bool `json:"security_alerts"`
}

// PrivacySettings control profile visibility and data usage consent
type PrivacySettings struct {
	ProfileVisibility string `json:"profile_visibility"`
	DataCollection    bool   `json:"data_collection"`
	ThirdPartySharing bool   `json:"third_party_sharing"`
	Analytics         bool   `json:"analytics"`
}

// DefaultNotificationSettings returns the settings applied at registration
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		OrderUpdates:   true,
		Promotions:     true,
		Newsletter:     false,
		SecurityAlerts: true,
	}
}

// DefaultPrivacySettings returns the settings applied at registration
func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		ProfileVisibility: VisibilityPublic,
		DataCollection:    true,
		ThirdPartySharing: false,
		Analytics:         true,
	}
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateProfileRequest carries a partial profile update
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

// UpdateNotificationsRequest carries partial notification toggles
type UpdateNotificationsRequest struct {
	OrderUpdates   *bool `json:"order_updates,omitempty"`
	Promotions     *bool `json:"promotions,omitempty"`
	Newsletter     *bool `json:"newsletter,omitempty"`
	SecurityAlerts *bool `json:"security_alerts,omitempty"`
}

// UpdatePrivacyRequest carries partial privacy settings
type UpdatePrivacyRequest struct {
	ProfileVisibility *string `json:"profile_visibility,omitempty" binding:"omitempty,oneof=public friends private"`
	DataCollection    *bool   `json:"data_collection,omitempty"`
	ThirdPartySharing *bool   `json:"third_party_sharing,omitempty"`
	Analytics         *bool   `json:"analytics,omitempty"`
}

// ChangePasswordRequest is the body of PUT /auth/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}
