package handler

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/areeshaabbas/inquiry-service/internal/kafka"
	"github.com/areeshaabbas/inquiry-service/internal/metrics"
	"github.com/areeshaabbas/inquiry-service/internal/model"
	"github.com/areeshaabbas/inquiry-service/internal/notify"
	"github.com/areeshaabbas/inquiry-service/internal/service"
)

// Та же проверка формы local@domain.tld, что была у исходного сайта.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type InquiryHandler struct {
	svc      service.InquiryServicer
	notifier *notify.Dispatcher
	producer kafka.InquiryEventProducer
}

func NewInquiryHandler(svc service.InquiryServicer, notifier *notify.Dispatcher, producer kafka.InquiryEventProducer) *InquiryHandler {
	return &InquiryHandler{svc: svc, notifier: notifier, producer: producer}
}

type submitInquiryRequest struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Whatsapp         string `json:"whatsapp"`
	BusinessName     string `json:"businessName"`
	Niche            string `json:"niche"`
	WebsiteGoal      string `json:"websiteGoal"`
	WebsiteGoalOther string `json:"websiteGoalOther"`
	KeyFeatures      string `json:"keyFeatures"`
	SpecialRequests  string `json:"specialRequests"`
	ReferenceStyle   string `json:"referenceStyle"`
}

// validate проверяет обязательные поля после трима; сообщения называют поле
// в терминах формы (camelCase ключи запроса).
func (r *submitInquiryRequest) validate() string {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", r.FullName},
		{"email", r.Email},
		{"whatsapp", r.Whatsapp},
		{"businessName", r.BusinessName},
		{"niche", r.Niche},
		{"websiteGoal", r.WebsiteGoal},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return f.name + " is required for processing."
		}
	}
	if !emailRegexp.MatchString(strings.TrimSpace(r.Email)) {
		return "Please provide a valid contact email."
	}
	return ""
}

// Submit принимает заявку: валидация → нормализация → вставка с заранее
// сгенерированным UUID → постановка уведомлений в очередь. Ответ не ждёт
// доставки писем — строка уже долговечна.
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req submitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	inq := &model.Inquiry{
		ID:               uuid.NewString(),
		FullName:         strings.TrimSpace(req.FullName),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Whatsapp:         strings.TrimSpace(req.Whatsapp),
		BusinessName:     strings.TrimSpace(req.BusinessName),
		Niche:            strings.TrimSpace(req.Niche),
		WebsiteGoal:      strings.TrimSpace(req.WebsiteGoal),
		WebsiteGoalOther: strings.TrimSpace(req.WebsiteGoalOther),
		KeyFeatures:      strings.TrimSpace(req.KeyFeatures),
		SpecialRequests:  strings.TrimSpace(req.SpecialRequests),
		ReferenceStyle:   strings.TrimSpace(req.ReferenceStyle),
	}
	if err := h.svc.Create(c.Request.Context(), inq); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database synchronization failed."})
		return
	}
	metrics.RecordInquirySubmitted()

	h.notifier.Enqueue(*inq)
	h.producer.ProduceInquiryEvent(c.Request.Context(), "inquiry.created", map[string]interface{}{
		"inquiry_id":    inq.ID,
		"business_name": inq.BusinessName,
		"status":        string(inq.Status),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "inquiryId": inq.ID})
}

type trackRequest struct {
	Email string `json:"email"`
}

// Track — поиск заявок по email. Лимитер уже отработал в middleware;
// наружу уходят только публичные поля.
func (h *InquiryHandler) Track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}
	if !emailRegexp.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address"})
		return
	}

	metrics.RecordStatusLookup()
	items, err := h.svc.ListByEmail(c.Request.Context(), email, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve status at this time"})
		return
	}
	orders := make([]model.PublicInquiry, 0, len(items))
	for i := range items {
		orders = append(orders, items[i].Public())
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
