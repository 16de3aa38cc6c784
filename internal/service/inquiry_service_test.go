package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/areeshaabbas/inquiry-service/internal/errs"
	"github.com/areeshaabbas/inquiry-service/internal/model"
)

func newTestService(t *testing.T) *InquiryService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// одно соединение, иначе пул наоткрывает отдельных :memory: баз
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Inquiry{}))
	return NewInquiryService(db)
}

func sampleInquiry() *model.Inquiry {
	return &model.Inquiry{
		FullName:     "A",
		Email:        "a@b.com",
		Whatsapp:     "123",
		BusinessName: "Biz",
		Niche:        "Retail",
		WebsiteGoal:  "personal",
	}
}

func TestCreate_GeneratesUniqueIDsAndInitialState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := sampleInquiry()
	require.NoError(t, svc.Create(ctx, first))
	second := sampleInquiry()
	require.NoError(t, svc.Create(ctx, second))

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.StatusPending, first.Status)
	assert.Equal(t, model.NotifyPending, first.NotifyState)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestGetByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inq := sampleInquiry()
	require.NoError(t, svc.Create(ctx, inq))

	got, err := svc.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biz", got.BusinessName)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrInquiryNotFound)
}

func TestListByEmail_NormalizesAndOrders(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inq := sampleInquiry()
		inq.BusinessName = []string{"First", "Second", "Third"}[i]
		require.NoError(t, svc.Create(ctx, inq))
	}
	other := sampleInquiry()
	other.Email = "someone@else.com"
	require.NoError(t, svc.Create(ctx, other))

	// запрос капсом находит строки, сохранённые в нижнем регистре
	items, err := svc.ListByEmail(ctx, "  A@B.com ", 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt), "newest first")
	}
}

func TestListByEmail_CapsAtLimit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, svc.Create(ctx, sampleInquiry()))
	}
	items, err := svc.ListByEmail(ctx, "a@b.com", 10)
	require.NoError(t, err)
	assert.Len(t, items, 10)
}

func TestListByEmail_NoMatchesIsEmptyNotError(t *testing.T) {
	svc := newTestService(t)
	items, err := svc.ListByEmail(context.Background(), "nobody@nowhere.com", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdate_StatusTransitions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inq := sampleInquiry()
	require.NoError(t, svc.Create(ctx, inq))

	// переходы не охраняются: cancelled прямо из pending принимается
	_, err := svc.Update(ctx, inq.ID, map[string]interface{}{"status": "cancelled"})
	require.NoError(t, err)
	got, err := svc.GetByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)

	// произвольная строка отбивается до записи
	_, err = svc.Update(ctx, inq.ID, map[string]interface{}{"status": "abandoned"})
	assert.ErrorIs(t, err, errs.ErrInvalidStatus)
	got, _ = svc.GetByID(ctx, inq.ID)
	assert.Equal(t, model.StatusCancelled, got.Status)
}

func TestUpdate_NotesOverwrittenVerbatim(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inq := sampleInquiry()
	require.NoError(t, svc.Create(ctx, inq))

	_, err := svc.Update(ctx, inq.ID, map[string]interface{}{"admin_notes": "  call back Tuesday  "})
	require.NoError(t, err)
	got, _ := svc.GetByID(ctx, inq.ID)
	assert.Equal(t, "  call back Tuesday  ", got.AdminNotes)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Update(context.Background(), "missing", map[string]interface{}{"status": "completed"})
	assert.ErrorIs(t, err, errs.ErrInquiryNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inq := sampleInquiry()
	require.NoError(t, svc.Create(ctx, inq))
	require.NoError(t, svc.Delete(ctx, inq.ID))

	_, err := svc.GetByID(ctx, inq.ID)
	assert.ErrorIs(t, err, errs.ErrInquiryNotFound)

	items, err := svc.ListByEmail(ctx, inq.Email, 10)
	require.NoError(t, err)
	assert.Empty(t, items, "deleted inquiry must not resurface in lookups")

	assert.ErrorIs(t, svc.Delete(ctx, inq.ID), errs.ErrInquiryNotFound)
}

func TestNotifyPendingLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	inq := sampleInquiry()
	require.NoError(t, svc.Create(ctx, inq))

	pending, err := svc.ListNotifyPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.MarkNotified(ctx, inq.ID))
	pending, err = svc.ListNotifyPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// повторная отметка того же id идемпотентна
	require.NoError(t, svc.MarkNotified(ctx, inq.ID))
	assert.ErrorIs(t, svc.MarkNotified(ctx, "missing"), errs.ErrInquiryNotFound)
}
