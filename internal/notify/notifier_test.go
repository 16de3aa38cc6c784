package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areeshaabbas/inquiry-service/internal/model"
)

type fakeMailer struct {
	mu    sync.Mutex
	sent  [][]string // получатели каждого вызова
	fails map[string]int
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{fails: make(map[string]int)}
}

// failNext заставляет следующие n отправок на адрес to падать.
func (m *fakeMailer) failNext(to string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fails[to] = n
}

func (m *fakeMailer) Send(_ context.Context, to []string, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := m.fails[to[0]]; n > 0 {
		m.fails[to[0]] = n - 1
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentTo() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.sent...)
}

type fakeStore struct {
	mu       sync.Mutex
	pending  map[string]model.Inquiry
	notified []string
}

func newFakeStore(items ...model.Inquiry) *fakeStore {
	s := &fakeStore{pending: make(map[string]model.Inquiry)}
	for _, it := range items {
		s.pending[it.ID] = it
	}
	return s
}

func (s *fakeStore) ListNotifyPending(context.Context) ([]model.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Inquiry
	for _, it := range s.pending {
		out = append(out, it)
	}
	return out, nil
}

func (s *fakeStore) MarkNotified(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	s.notified = append(s.notified, id)
	return nil
}

func testInquiry(id string) model.Inquiry {
	return model.Inquiry{
		ID:           id,
		FullName:     "Jane",
		Email:        "jane@client.com",
		BusinessName: "Acme",
		WebsiteGoal:  "personal",
		Status:       model.StatusPending,
		NotifyState:  model.NotifyPending,
	}
}

func TestDispatch_MarksSentAndSendsBothEmails(t *testing.T) {
	mailer := newFakeMailer()
	store := newFakeStore()
	d := New(store, mailer, "owner@site.com")
	d.backoff = 0

	inq := testInquiry("inq-1")
	require.NoError(t, d.Dispatch(context.Background(), &inq))

	sent := mailer.sentTo()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{"owner@site.com"}, sent[0])
	assert.Equal(t, []string{"jane@client.com"}, sent[1])
	assert.Equal(t, []string{"inq-1"}, store.notified)
}

func TestDispatch_RetriesOperatorEmail(t *testing.T) {
	mailer := newFakeMailer()
	mailer.failNext("owner@site.com", 2) // две неудачи, третья попытка проходит
	store := newFakeStore()
	d := New(store, mailer, "owner@site.com")
	d.backoff = 0

	inq := testInquiry("inq-1")
	require.NoError(t, d.Dispatch(context.Background(), &inq))
	assert.Equal(t, []string{"inq-1"}, store.notified)
}

func TestDispatch_OperatorFailureLeavesPending(t *testing.T) {
	mailer := newFakeMailer()
	mailer.failNext("owner@site.com", 10) // больше, чем попыток
	store := newFakeStore()
	d := New(store, mailer, "owner@site.com")
	d.backoff = 0

	inq := testInquiry("inq-1")
	err := d.Dispatch(context.Background(), &inq)
	require.Error(t, err)
	assert.Empty(t, store.notified, "row must stay pending for notify-retry")
	assert.Empty(t, mailer.sentTo(), "confirmation must not go out before the operator email")
}

func TestDispatch_ConfirmationFailureIsSwallowed(t *testing.T) {
	mailer := newFakeMailer()
	mailer.failNext("jane@client.com", 10)
	store := newFakeStore()
	d := New(store, mailer, "owner@site.com")
	d.backoff = 0

	inq := testInquiry("inq-1")
	require.NoError(t, d.Dispatch(context.Background(), &inq), "confirmation failure is not surfaced")
	assert.Equal(t, []string{"inq-1"}, store.notified)
}

func TestRetryPending(t *testing.T) {
	mailer := newFakeMailer()
	store := newFakeStore(testInquiry("a"), testInquiry("b"))
	d := New(store, mailer, "owner@site.com")
	d.backoff = 0

	sent, err := d.RetryPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.ElementsMatch(t, []string{"a", "b"}, store.notified)

	// повторный прогон ничего не находит
	sent, err = d.RetryPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}
