package model

import "time"

type InquiryStatus string

const (
	StatusPending     InquiryStatus = "pending"
	StatusInProgress  InquiryStatus = "in-progress"
	StatusPreviewSent InquiryStatus = "preview-sent"
	StatusCompleted   InquiryStatus = "completed"
	StatusCancelled   InquiryStatus = "cancelled"
)

// NotifyState — состояние доставки внутреннего уведомления о заявке.
// Двухфазная запись: строка вставляется с "pending", после успешной отправки
// письма владельцу становится "sent".
type NotifyState string

const (
	NotifyPending NotifyState = "pending"
	NotifySent    NotifyState = "sent"
)

// Inquiry — заявка на проект, единственная персистентная сущность сервиса.
type Inquiry struct {
	ID               string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FullName         string        `gorm:"not null" json:"full_name"`
	Email            string        `gorm:"index;not null" json:"email"`
	Whatsapp         string        `gorm:"not null" json:"whatsapp"`
	BusinessName     string        `gorm:"not null" json:"business_name"`
	Niche            string        `gorm:"not null" json:"niche"`
	WebsiteGoal      string        `gorm:"not null" json:"website_goal"`
	WebsiteGoalOther string        `json:"website_goal_other,omitempty"`
	KeyFeatures      string        `gorm:"type:text" json:"key_features,omitempty"`
	SpecialRequests  string        `gorm:"type:text" json:"special_requests,omitempty"`
	ReferenceStyle   string        `gorm:"type:text" json:"reference_style,omitempty"`
	Status           InquiryStatus `gorm:"type:varchar(32);index;not null;default:pending" json:"status"`
	AdminNotes       string        `gorm:"type:text" json:"admin_notes,omitempty"`
	NotifyState      NotifyState   `gorm:"type:varchar(16);not null;default:pending" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName — имя таблицы унаследовано от исходной схемы сайта.
func (Inquiry) TableName() string { return "orders" }

// PublicInquiry — проекция заявки для публичного трекера статуса.
// Контакты, заметки админа и свободный текст требований сюда не попадают.
type PublicInquiry struct {
	ID               string    `json:"id"`
	BusinessName     string    `json:"business_name"`
	WebsiteGoal      string    `json:"website_goal"`
	WebsiteGoalOther string    `json:"website_goal_other,omitempty"`
	Status           string    `json:"status"`
	StatusMessage    string    `json:"status_message"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Public возвращает публичную проекцию заявки.
func (i *Inquiry) Public() PublicInquiry {
	return PublicInquiry{
		ID:               i.ID,
		BusinessName:     i.BusinessName,
		WebsiteGoal:      i.WebsiteGoal,
		WebsiteGoalOther: i.WebsiteGoalOther,
		Status:           string(i.Status),
		StatusMessage:    i.Status.VisitorMessage(),
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}
