package entity

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// UpdateReviewRequest - запрос на обновление отзыва
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// APIResponse - единый конверт ответа API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination - сведения о странице выдачи
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// ReviewData - тело ответа на создание/обновление отзыва
type ReviewData struct {
	Review        *Review `json:"review"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// ReviewListData - тело ответа на запрос списка отзывов
type ReviewListData struct {
	Reviews       []Review   `json:"reviews"`
	Pagination    Pagination `json:"pagination"`
	AverageRating float64    `json:"average_rating"`
	TotalReviews  int64      `json:"total_reviews"`
}

// HasReviewedData - тело ответа на проверку наличия отзыва
type HasReviewedData struct {
	HasReviewed bool    `json:"has_reviewed"`
	Review      *Review `json:"review,omitempty"`
}
