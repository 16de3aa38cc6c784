// Package notify — асинхронная доставка писем о заявке. Успех сабмита
// отвязан от доставки: строка лежит в базе с notify_state=pending, диспетчер
// шлёт письмо владельцу с ретраями и помечает строку sent. Зависшие после
// падения процесса строки добирает команда notify-retry.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/areeshaabbas/inquiry-service/internal/email"
	"github.com/areeshaabbas/inquiry-service/internal/metrics"
	"github.com/areeshaabbas/inquiry-service/internal/model"
)

// Store — минимум, который диспетчеру нужен от хранилища заявок.
type Store interface {
	ListNotifyPending(ctx context.Context) ([]model.Inquiry, error)
	MarkNotified(ctx context.Context, id string) error
}

type Dispatcher struct {
	store  Store
	mailer email.Mailer
	owner  string

	queue    chan model.Inquiry
	attempts int
	backoff  time.Duration
}

func New(store Store, mailer email.Mailer, owner string) *Dispatcher {
	return &Dispatcher{
		store:    store,
		mailer:   mailer,
		owner:    owner,
		queue:    make(chan model.Inquiry, 64),
		attempts: 3,
		backoff:  2 * time.Second,
	}
}

// Start запускает цикл доставки; останавливается по отмене ctx.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case inq := <-d.queue:
				if err := d.Dispatch(ctx, &inq); err != nil {
					log.Printf("notify: inquiry %s: %v (will be picked up by notify-retry)", inq.ID, err)
				}
			}
		}
	}()
}

// Enqueue ставит заявку в очередь доставки, не блокируя ответ API.
// Переполненная очередь не фатальна: строка остаётся pending в базе.
func (d *Dispatcher) Enqueue(inq model.Inquiry) {
	select {
	case d.queue <- inq:
	default:
		log.Printf("notify: queue full, inquiry %s left pending", inq.ID)
	}
}

// Dispatch доставляет оба письма по заявке. Письмо владельцу ретраится и по
// успеху фиксируется в notify_state; подтверждение клиенту — best-effort,
// его падение глотается с логом (запись уже долговечна).
func (d *Dispatcher) Dispatch(ctx context.Context, inq *model.Inquiry) error {
	subject, body := email.OperatorNotification(inq)
	var err error
	for attempt := 0; attempt < d.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.backoff * time.Duration(attempt)):
			}
		}
		if err = d.mailer.Send(ctx, []string{d.owner}, subject, body); err == nil {
			break
		}
		log.Printf("notify: operator email attempt %d for inquiry %s: %v", attempt+1, inq.ID, err)
	}
	if err != nil {
		metrics.RecordEmail("operator", false)
		return fmt.Errorf("operator email: %w", err)
	}
	metrics.RecordEmail("operator", true)

	if err := d.store.MarkNotified(ctx, inq.ID); err != nil {
		// Письмо ушло, отметка не записалась: notify-retry продублирует
		// уведомление, это допустимо — операция идемпотентна по смыслу.
		log.Printf("notify: mark notified %s: %v", inq.ID, err)
	}

	subject, body = email.ClientConfirmation(inq)
	if err := d.mailer.Send(ctx, []string{inq.Email}, subject, body); err != nil {
		metrics.RecordEmail("confirmation", false)
		log.Printf("notify: confirmation email skipped for inquiry %s: %v", inq.ID, err)
	} else {
		metrics.RecordEmail("confirmation", true)
	}
	return nil
}

// RetryPending добирает заявки, застрявшие в notify_state=pending.
func (d *Dispatcher) RetryPending(ctx context.Context) (int, error) {
	items, err := d.store.ListNotifyPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending: %w", err)
	}
	sent := 0
	for i := range items {
		if err := d.Dispatch(ctx, &items[i]); err != nil {
			log.Printf("notify: retry inquiry %s: %v", items[i].ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
