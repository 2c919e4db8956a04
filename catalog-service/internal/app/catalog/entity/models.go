package entity

import "time"

// Виды исполнителей каталога. Эти же значения используются
// сервисом отзывов как reviewable_kind.
const (
	KindDoctor = "doctor"
	KindNanny  = "nanny"
)

// DefaultLang - язык переводов по умолчанию
const DefaultLang = "en"

// Nanny представляет няню в каталоге
type Nanny struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	Experience   int                `json:"experience"` // опыт в годах
	HourlyRate   float64            `json:"hourly_rate"`
	LocationID   *uint              `json:"location_id,omitempty"`
	Location     *Location          `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Translations []NannyTranslation `json:"translations,omitempty" gorm:"foreignKey:NannyID"`
	Photos       []NannyPhoto       `json:"photos,omitempty" gorm:"foreignKey:NannyID"`
	Languages    []Language         `json:"languages,omitempty" gorm:"many2many:nanny_languages"`
	Services     []Service          `json:"services,omitempty" gorm:"many2many:nanny_services"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (Nanny) TableName() string {
	return "nannies"
}

// NannyTranslation - локализованные поля няни
type NannyTranslation struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	NannyID uint   `json:"nanny_id" gorm:"index:idx_nanny_lang,unique"`
	Lang    string `json:"lang" gorm:"size:5;index:idx_nanny_lang,unique"`
	Name    string `json:"name" gorm:"size:255;not null"`
	About   string `json:"about" gorm:"type:text"`
}

func (NannyTranslation) TableName() string {
	return "nanny_translations"
}

// NannyPhoto - фотография в профиле няни
type NannyPhoto struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	NannyID  uint   `json:"nanny_id" gorm:"index"`
	URL      string `json:"url" gorm:"size:512;not null"`
	Position int    `json:"position"`
}

func (NannyPhoto) TableName() string {
	return "nanny_photos"
}

// Doctor представляет врача в каталоге
type Doctor struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	Experience   int                 `json:"experience"` // опыт в годах
	PhotoURL     string              `json:"photo_url,omitempty" gorm:"size:512"`
	DegreeID     *uint               `json:"degree_id,omitempty"`
	Degree       *Degree             `json:"degree,omitempty" gorm:"foreignKey:DegreeID"`
	LocationID   *uint               `json:"location_id,omitempty"`
	Location     *Location           `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Translations []DoctorTranslation `json:"translations,omitempty" gorm:"foreignKey:DoctorID"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DoctorTranslation - локализованные поля врача
type DoctorTranslation struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	DoctorID  uint   `json:"doctor_id" gorm:"index:idx_doctor_lang,unique"`
	Lang      string `json:"lang" gorm:"size:5;index:idx_doctor_lang,unique"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Specialty string `json:"specialty" gorm:"size:255"`
	About     string `json:"about" gorm:"type:text"`
}

func (DoctorTranslation) TableName() string {
	return "doctor_translations"
}

// Language - язык, на котором говорит няня
type Language struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:5;uniqueIndex"`
	Name string `json:"name" gorm:"size:100;not null"`
}

func (Language) TableName() string {
	return "languages"
}

// Service - услуга, которую оказывает няня
type Service struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

func (Service) TableName() string {
	return "services"
}

// Degree - ученая степень врача
type Degree struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:255;not null"`
}

func (Degree) TableName() string {
	return "degrees"
}

// Location - город или район, где работает исполнитель
type Location struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	City   string `json:"city" gorm:"size:255;not null"`
	Region string `json:"region,omitempty" gorm:"size:255"`
}

func (Location) TableName() string {
	return "locations"
}

// CaregiverEvent - событие каталога для Kafka
// (CAREGIVER_CREATED, CAREGIVER_UPDATED, CAREGIVER_DELETED)
type CaregiverEvent struct {
	EventType string    `json:"event_type"`
	Kind      string    `json:"kind"` // doctor или nanny
	ID        uint      `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}
