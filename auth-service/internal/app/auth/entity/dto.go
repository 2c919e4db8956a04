package entity

// RegisterRequest - запрос на регистрацию.
// Роль выбирается при регистрации; по умолчанию parent.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
	Role     string `json:"role" validate:"omitempty,oneof=parent doctor nurse"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest - запрос на обновление токена
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateProfileRequest - запрос на обновление профиля
type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,e164"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// UpdatePasswordRequest - запрос на обновление пароля
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// AuthResponse - ответ с пользователем и токенами
type AuthResponse struct {
	User   UserWithRole `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
