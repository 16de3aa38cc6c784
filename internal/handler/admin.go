package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/areeshaabbas/inquiry-service/internal/errs"
	"github.com/areeshaabbas/inquiry-service/internal/kafka"
	"github.com/areeshaabbas/inquiry-service/internal/model"
	"github.com/areeshaabbas/inquiry-service/internal/service"
)

// AdminHandler — операции триажа заявок; маршруты закрыты JWT-middleware.
type AdminHandler struct {
	svc      service.InquiryServicer
	producer kafka.InquiryEventProducer
}

func NewAdminHandler(svc service.InquiryServicer, producer kafka.InquiryEventProducer) *AdminHandler {
	return &AdminHandler{svc: svc, producer: producer}
}

// List — все заявки, новые первыми, плюс счётчики для шапки дашборда.
func (h *AdminHandler) List(c *gin.Context) {
	filter := make(map[string]interface{})
	if v := c.Query("status"); v != "" {
		if !model.ValidStatus(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter["status = ?"] = v
	}
	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list inquiries"})
		return
	}
	stats := gin.H{"total": len(items), "pending": 0, "inProgress": 0, "completed": 0}
	for i := range items {
		switch items[i].Status {
		case model.StatusPending:
			stats["pending"] = stats["pending"].(int) + 1
		case model.StatusInProgress:
			stats["inProgress"] = stats["inProgress"].(int) + 1
		case model.StatusCompleted:
			stats["completed"] = stats["completed"].(int) + 1
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"inquiries": items,
		"total":     len(items),
		"stats":     stats,
	})
}

type updateInquiryRequest struct {
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// Update — частичное изменение: статус (любой известный из любого, таблица
// переходов сознательно не проверяется) и/или заметка (перезапись verbatim).
func (h *AdminHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.AdminNotes != nil {
		changes["admin_notes"] = *req.AdminNotes
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), id, changes); err != nil {
		switch {
		case errors.Is(err, errs.ErrInquiryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
		case errors.Is(err, errs.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update inquiry"})
		}
		return
	}
	// Updates по map не освежает поля структуры — перечитываем для ответа
	full, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reload inquiry"})
		return
	}
	h.producer.ProduceInquiryEvent(c.Request.Context(), "inquiry.updated", map[string]interface{}{
		"inquiry_id": full.ID,
		"status":     string(full.Status),
	})
	c.JSON(http.StatusOK, full)
}

// Delete — необратимое удаление строки.
func (h *AdminHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrInquiryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete inquiry"})
		return
	}
	h.producer.ProduceInquiryEvent(c.Request.Context(), "inquiry.deleted", map[string]interface{}{
		"inquiry_id": id,
	})
	c.JSON(http.StatusOK, gin.H{"success": true})
}
