package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/areeshaabbas/inquiry-service/internal/errs"
	"github.com/areeshaabbas/inquiry-service/internal/model"
)

// InquiryServicer — интерфейс хранилища заявок для хендлеров и диспетчера
// уведомлений (зависимость от абстракции, не от GORM).
type InquiryServicer interface {
	Create(ctx context.Context, inq *model.Inquiry) error
	GetByID(ctx context.Context, id string) (*model.Inquiry, error)
	ListByEmail(ctx context.Context, email string, limit int) ([]model.Inquiry, error)
	List(ctx context.Context, filter map[string]interface{}) ([]model.Inquiry, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Inquiry, error)
	Delete(ctx context.Context, id string) error
	ListNotifyPending(ctx context.Context) ([]model.Inquiry, error)
	MarkNotified(ctx context.Context, id string) error
}

type InquiryService struct {
	db *gorm.DB
}

func NewInquiryService(db *gorm.DB) *InquiryService {
	return &InquiryService{db: db}
}

// Create вставляет заявку. Идентификатор генерируется заранее, чтобы сразу
// вернуть его клиенту для трекинга; статус всегда начинается с pending.
func (s *InquiryService) Create(ctx context.Context, inq *model.Inquiry) error {
	if inq.ID == "" {
		inq.ID = uuid.NewString()
	}
	inq.Status = model.StatusPending
	if inq.NotifyState == "" {
		inq.NotifyState = model.NotifyPending
	}
	return s.db.WithContext(ctx).Create(inq).Error
}

func (s *InquiryService) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	var inq model.Inquiry
	if err := s.db.WithContext(ctx).First(&inq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInquiryNotFound
		}
		return nil, err
	}
	return &inq, nil
}

// ListByEmail — заявки по нормализованному email, новые первыми, не больше limit.
// Email в базе уже в нижнем регистре, поэтому сравнение точное.
func (s *InquiryService) ListByEmail(ctx context.Context, email string, limit int) ([]model.Inquiry, error) {
	var items []model.Inquiry
	normalized := strings.ToLower(strings.TrimSpace(email))
	tx := s.db.WithContext(ctx).Where("email = ?", normalized).Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// List — все заявки для админки, новые первыми.
func (s *InquiryService) List(ctx context.Context, filter map[string]interface{}) ([]model.Inquiry, error) {
	var items []model.Inquiry
	tx := s.db.WithContext(ctx).Model(&model.Inquiry{})
	for k, v := range filter {
		tx = tx.Where(k, v)
	}
	if err := tx.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update применяет частичное изменение (status и/или admin_notes). Статус
// проверяется на закрытый набор здесь, до записи; CHECK в миграции — подстраховка.
func (s *InquiryService) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Inquiry, error) {
	if raw, ok := changes["status"]; ok {
		st, _ := raw.(string)
		if !model.ValidStatus(st) {
			return nil, errs.ErrInvalidStatus
		}
	}
	var inq model.Inquiry
	if err := s.db.WithContext(ctx).First(&inq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInquiryNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&inq).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &inq, nil
}

// Delete удаляет заявку навсегда; подтверждение — забота клиента.
func (s *InquiryService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Inquiry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrInquiryNotFound
	}
	return nil
}

// ListNotifyPending — заявки, по которым внутреннее уведомление ещё не ушло.
func (s *InquiryService) ListNotifyPending(ctx context.Context) ([]model.Inquiry, error) {
	var items []model.Inquiry
	err := s.db.WithContext(ctx).
		Where("notify_state = ?", model.NotifyPending).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// MarkNotified помечает заявку как уведомлённую (идемпотентная отметка
// второй фазы: повторная отправка после падения процесса безопасна).
func (s *InquiryService) MarkNotified(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&model.Inquiry{}).
		Where("id = ?", id).
		Update("notify_state", model.NotifySent)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrInquiryNotFound
	}
	return nil
}
