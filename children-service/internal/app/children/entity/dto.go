package entity

// RegisterChildRequest - запрос на регистрацию ребенка.
// TokenCode необязателен: если он передан, соответствующий
// регистрационный токен гасится в той же транзакции.
type RegisterChildRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Address   string `json:"address" validate:"omitempty,max=255"`
	Birthday  string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	BloodType string `json:"blood_type" validate:"omitempty,max=10"`
	Gender    string `json:"gender" validate:"omitempty,oneof=Male Female"`
	ImageURL  string `json:"image_url" validate:"omitempty,url,max=512"`
	TokenCode string `json:"token_code" validate:"omitempty,alphanum,max=16"`
}

// UpdateChildRequest - запрос на обновление данных ребенка
type UpdateChildRequest struct {
	Name      string `json:"name" validate:"omitempty,max=255"`
	LastName  string `json:"last_name" validate:"omitempty,max=255"`
	Address   string `json:"address" validate:"omitempty,max=255"`
	Birthday  string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	BloodType string `json:"blood_type" validate:"omitempty,max=10"`
	Gender    string `json:"gender" validate:"omitempty,oneof=Male Female"`
	ImageURL  string `json:"image_url" validate:"omitempty,url,max=512"`
}

// APIResponse - единый конверт ответа API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
