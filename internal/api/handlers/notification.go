package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/service"
)

// NotificationHandler 處理通知查詢與已讀操作
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler 創建一個新的 NotificationHandler 實例
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications 列出呼叫者的通知，?unread=true 只看未讀
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(currentUserID(c), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead 把一筆通知標為已讀
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的通知ID"})
		return
	}

	if err := h.notificationService.MarkRead(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "通知已讀"})
}
