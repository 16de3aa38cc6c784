package model

// Статусы образуют закрытый набор; никакой таблицы переходов нет —
// админ может выставить любой известный статус из любого (задуманный путь:
// pending → in-progress → preview-sent → completed, cancelled из любого).

var statusLabels = map[InquiryStatus]string{
	StatusPending:     "Pending",
	StatusInProgress:  "In Progress",
	StatusPreviewSent: "Preview Sent",
	StatusCompleted:   "Completed",
	StatusCancelled:   "Cancelled",
}

// Текст для посетителя в трекере. Админский лейбл и эта фраза живут рядом,
// чтобы два представления одного статуса не разъезжались.
var statusMessages = map[InquiryStatus]string{
	StatusPending:     "I've received your requirements and I'm currently reviewing the technical scope.",
	StatusInProgress:  "The build is currently in development. I'm focusing on the core integration features.",
	StatusPreviewSent: "A live preview is ready. Please check your email for the link and let me know your thoughts.",
	StatusCompleted:   "The project is complete and fully deployed. I've sent the final access details to your inbox.",
	StatusCancelled:   "This inquiry has been closed or archived.",
}

// ValidStatus сообщает, входит ли строка в закрытый набор статусов.
func ValidStatus(s string) bool {
	_, ok := statusLabels[InquiryStatus(s)]
	return ok
}

// Label — человекочитаемый лейбл статуса для админки.
func (s InquiryStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusPending]
}

// VisitorMessage — поясняющая фраза статуса для посетителя.
func (s InquiryStatus) VisitorMessage() string {
	if m, ok := statusMessages[s]; ok {
		return m
	}
	return statusMessages[StatusPending]
}

var goalLabels = map[string]string{
	"personal":  "Personal Website / Portfolio",
	"ecommerce": "E-commerce Solutions",
	"ai-tool":   "Custom AI Integration",
}

// GoalText — отображаемая цель сайта. Свободный текст website_goal_other
// имеет смысл только при категории "other", иначе игнорируется.
func (i *Inquiry) GoalText() string {
	if i.WebsiteGoal == "other" && i.WebsiteGoalOther != "" {
		return i.WebsiteGoalOther
	}
	if l, ok := goalLabels[i.WebsiteGoal]; ok {
		return l
	}
	return i.WebsiteGoal
}
