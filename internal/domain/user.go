package domain

// User is the farmer profile returned by /users/me and embedded in login
// responses.
type User struct {
	ID                int64      `json:"id"`
	PhoneNumber       string     `json:"phone_number"`
	Name              string     `json:"name"`
	Email             *string    `json:"email,omitempty"`
	State             string     `json:"state"`
	District          string     `json:"district"`
	Village           *string    `json:"village,omitempty"`
	Pincode           *string    `json:"pincode,omitempty"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	FarmSize          *float64   `json:"farm_size,omitempty"`
	PrimaryCrops      *string    `json:"primary_crops,omitempty"`
	FarmingExperience *int       `json:"farming_experience,omitempty"`
	PreferredLanguage string     `json:"preferred_language"`
	IsVerified        bool       `json:"is_verified"`
	CreatedAt         *Timestamp `json:"created_at,omitempty"`
}

// SendOTPRequest starts the phone login flow
type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// SendOTPResponse acknowledges that a code was dispatched
type SendOTPResponse struct {
	Message     string `json:"message"`
	PhoneNumber string `json:"phone_number"`
	UserExists  bool   `json:"user_exists"`
}

// OTPVerification completes the phone login flow. The optional fields seed
// the profile when the phone number is new.
type OTPVerification struct {
	PhoneNumber string  `json:"phone_number" validate:"required"`
	OTP         string  `json:"otp" validate:"required,len=6,numeric"`
	Name        *string `json:"name,omitempty"`
	State       *string `json:"state,omitempty"`
	District    *string `json:"district,omitempty"`
	Language    *string `json:"language,omitempty" validate:"omitempty,oneof=hi en pa"`
}

// UserRegistration creates a complete profile in one call
type UserRegistration struct {
	PhoneNumber       string   `json:"phone_number" validate:"required"`
	Name              string   `json:"name" validate:"required,max=100"`
	Email             *string  `json:"email,omitempty" validate:"omitempty,email"`
	State             string   `json:"state" validate:"required"`
	District          string   `json:"district" validate:"required"`
	Village           *string  `json:"village,omitempty"`
	Pincode           *string  `json:"pincode,omitempty" validate:"omitempty,len=6,numeric"`
	Latitude          *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude         *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	FarmSize          *float64 `json:"farm_size,omitempty" validate:"omitempty,gte=0"`
	PrimaryCrops      *string  `json:"primary_crops,omitempty"`
	FarmingExperience *int     `json:"farming_experience,omitempty" validate:"omitempty,gte=0"`
	PreferredLanguage string   `json:"preferred_language,omitempty" validate:"omitempty,oneof=hi en pa"`
}

// UserUpdate is a partial profile update; nil fields are left unchanged
type UserUpdate struct {
	Name                    *string         `json:"name,omitempty"`
	Email                   *string         `json:"email,omitempty" validate:"omitempty,email"`
	State                   *string         `json:"state,omitempty"`
	District                *string         `json:"district,omitempty"`
	Village                 *string         `json:"village,omitempty"`
	Pincode                 *string         `json:"pincode,omitempty" validate:"omitempty,len=6,numeric"`
	Latitude                *float64        `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude               *float64        `json:"longitude,omitempty" validate:"omitempty,longitude"`
	FarmSize                *float64        `json:"farm_size,omitempty" validate:"omitempty,gte=0"`
	PrimaryCrops            *string         `json:"primary_crops,omitempty"`
	FarmingExperience       *int            `json:"farming_experience,omitempty" validate:"omitempty,gte=0"`
	PreferredLanguage       *string         `json:"preferred_language,omitempty" validate:"omitempty,oneof=hi en pa"`
	NotificationPreferences map[string]bool `json:"notification_preferences,omitempty"`
}

// LoginResponse is returned by verify-OTP and register
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// TokenResponse is returned by refresh-token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AvatarResponse is returned by the avatar upload
type AvatarResponse struct {
	Message   string `json:"message"`
	AvatarURL string `json:"avatar_url"`
}

// MessageResponse is the generic acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
}
