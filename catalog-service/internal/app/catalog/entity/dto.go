package entity

// TranslationInput - локализованные поля в запросах на создание/обновление
type TranslationInput struct {
	Lang      string `json:"lang" validate:"required,bcp47_language_tag"`
	Name      string `json:"name" validate:"required,max=255"`
	Specialty string `json:"specialty" validate:"omitempty,max=255"`
	About     string `json:"about" validate:"omitempty"`
}

// CreateNannyRequest - запрос на создание профиля няни
type CreateNannyRequest struct {
	Experience   int                `json:"experience" validate:"gte=0,lte=80"`
	HourlyRate   float64            `json:"hourly_rate" validate:"gte=0"`
	LocationID   *uint              `json:"location_id"`
	Translations []TranslationInput `json:"translations" validate:"required,min=1,dive"`
	PhotoURLs    []string           `json:"photo_urls" validate:"omitempty,dive,url"`
	LanguageIDs  []uint             `json:"language_ids"`
	ServiceIDs   []uint             `json:"service_ids"`
}

// UpdateNannyRequest - запрос на обновление профиля няни.
// Переводы и связи заменяются целиком, если переданы.
type UpdateNannyRequest struct {
	Experience   *int               `json:"experience" validate:"omitempty,gte=0,lte=80"`
	HourlyRate   *float64           `json:"hourly_rate" validate:"omitempty,gte=0"`
	LocationID   *uint              `json:"location_id"`
	Translations []TranslationInput `json:"translations" validate:"omitempty,min=1,dive"`
	PhotoURLs    []string           `json:"photo_urls" validate:"omitempty,dive,url"`
	LanguageIDs  []uint             `json:"language_ids"`
	ServiceIDs   []uint             `json:"service_ids"`
}

// CreateDoctorRequest - запрос на создание профиля врача
type CreateDoctorRequest struct {
	Experience   int                `json:"experience" validate:"gte=0,lte=80"`
	PhotoURL     string             `json:"photo_url" validate:"omitempty,url"`
	DegreeID     *uint              `json:"degree_id"`
	LocationID   *uint              `json:"location_id"`
	Translations []TranslationInput `json:"translations" validate:"required,min=1,dive"`
}

// UpdateDoctorRequest - запрос на обновление профиля врача
type UpdateDoctorRequest struct {
	Experience   *int               `json:"experience" validate:"omitempty,gte=0,lte=80"`
	PhotoURL     string             `json:"photo_url" validate:"omitempty,url"`
	DegreeID     *uint              `json:"degree_id"`
	LocationID   *uint              `json:"location_id"`
	Translations []TranslationInput `json:"translations" validate:"omitempty,min=1,dive"`
}

// NannyView - няня с выбранным переводом для ответа API
type NannyView struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	About      string    `json:"about,omitempty"`
	Experience int       `json:"experience"`
	HourlyRate float64   `json:"hourly_rate"`
	Location   *Location `json:"location,omitempty"`
	Photos     []string  `json:"photos,omitempty"`
	Languages  []string  `json:"languages,omitempty"`
	Services   []string  `json:"services,omitempty"`
}

// DoctorView - врач с выбранным переводом для ответа API
type DoctorView struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Specialty  string    `json:"specialty,omitempty"`
	About      string    `json:"about,omitempty"`
	Experience int       `json:"experience"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	Degree     string    `json:"degree,omitempty"`
	Location   *Location `json:"location,omitempty"`
}

// Pagination - метаданные страницы списка
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NannyListData - страница списка нянь
type NannyListData struct {
	Nannies    []NannyView `json:"nannies"`
	Pagination Pagination  `json:"pagination"`
}

// DoctorListData - страница списка врачей
type DoctorListData struct {
	Doctors    []DoctorView `json:"doctors"`
	Pagination Pagination   `json:"pagination"`
}

// APIResponse - единый конверт ответа API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
