package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/areeshaabbas/inquiry-service/internal/assistant"
)

type assistantRequest struct {
	Message string `json:"message"`
}

// Assistant — скриптовый помощник: подбор заготовленного ответа по ключевым
// словам, без состояния на сервере.
func Assistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": assistant.Reply(req.Message)})
}
