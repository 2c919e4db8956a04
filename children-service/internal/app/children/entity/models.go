package entity

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationToken - одноразовый код, выдаваемый заранее (например, на браслете)
// и дающий право привязать ребенка к аккаунту родителя.
// Коды хранятся в верхнем регистре; сравнение выполняется без учета регистра.
//
// Used намеренно nullable: токены генерируются пачками заранее,
// и NULL трактуется так же, как false - "не использован".
type RegistrationToken struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Code      string     `json:"code" gorm:"uniqueIndex;size:16;not null"`
	Used      *bool      `json:"used"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (RegistrationToken) TableName() string {
	return "registration_tokens"
}

// IsUsed трактует NULL и false одинаково - токен еще не погашен
func (t *RegistrationToken) IsUsed() bool {
	return t.Used != nil && *t.Used
}

// Child представляет ребенка, привязанного к аккаунту родителя
type Child struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;index;not null"`
	Name      string     `json:"name" gorm:"size:255;not null"`
	LastName  string     `json:"last_name" gorm:"size:255;not null"`
	Address   string     `json:"address,omitempty" gorm:"size:255"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	BloodType string     `json:"blood_type,omitempty" gorm:"size:10"`
	Gender    string     `json:"gender,omitempty" gorm:"size:10"`
	ImageURL  string     `json:"image_url,omitempty" gorm:"size:512"`
	TokenCode string     `json:"token_code,omitempty" gorm:"size:16;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Child) TableName() string {
	return "children"
}

// ChildEvent - событие для Kafka (CHILD_REGISTERED)
type ChildEvent struct {
	EventType string    `json:"event_type"`
	ChildID   uint      `json:"child_id"`
	UserID    string    `json:"user_id"`
	TokenCode string    `json:"token_code,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
