package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "in-progress", "preview-sent", "completed", "cancelled"} {
		assert.True(t, ValidStatus(s), s)
	}
	for _, s := range []string{"", "open", "PENDING", "done", "in_progress"} {
		assert.False(t, ValidStatus(s), s)
	}
}

func TestStatusLabelsAndMessagesStayInSync(t *testing.T) {
	// у каждого статуса ровно один лейбл и одна фраза для посетителя
	assert.Equal(t, len(statusLabels), len(statusMessages))
	for s := range statusLabels {
		assert.Contains(t, statusMessages, s)
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "Cancelled", StatusCancelled.Label())
	// неизвестный статус падает на представление pending
	assert.Equal(t, "Pending", InquiryStatus("bogus").Label())
}

func TestVisitorMessage(t *testing.T) {
	assert.Contains(t, StatusPreviewSent.VisitorMessage(), "live preview")
	assert.Contains(t, StatusCancelled.VisitorMessage(), "closed or archived")
}

func TestGoalText(t *testing.T) {
	tests := []struct {
		name string
		inq  Inquiry
		want string
	}{
		{"known category", Inquiry{WebsiteGoal: "personal"}, "Personal Website / Portfolio"},
		{"other with override", Inquiry{WebsiteGoal: "other", WebsiteGoalOther: "A booking engine"}, "A booking engine"},
		{"override ignored outside other", Inquiry{WebsiteGoal: "ecommerce", WebsiteGoalOther: "ignored"}, "E-commerce Solutions"},
		{"unknown goal passes through", Inquiry{WebsiteGoal: "saas"}, "saas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inq.GoalText())
		})
	}
}

func TestPublicProjectionOmitsPrivateFields(t *testing.T) {
	inq := Inquiry{
		ID:           "id-1",
		FullName:     "A",
		Email:        "a@b.com",
		Whatsapp:     "123",
		BusinessName: "Biz",
		AdminNotes:   "private",
		Status:       StatusPending,
	}
	pub := inq.Public()
	assert.Equal(t, "id-1", pub.ID)
	assert.Equal(t, "Biz", pub.BusinessName)
	assert.Equal(t, "pending", pub.Status)
	assert.Equal(t, StatusPending.VisitorMessage(), pub.StatusMessage)
}
