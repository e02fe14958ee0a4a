package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/service"
)

// MessageHandler 處理房間訊息相關的請求
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler 創建一個新的 MessageHandler 實例
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// CreateMessage 處理發送訊息的請求
// 訊息會經過完整管線：驗證 → 授權 → 解析提及 → 持久化
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的房間ID"})
		return
	}

	var input struct {
		Content       string `json:"content"`
		AttachmentRef string `json:"attachment_ref"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.CreateMessage(roomID, currentUserID(c), input.Content, input.AttachmentRef)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// ListMessages 依序號列出房間訊息，支援 limit 與 cursor 分頁
func (h *MessageHandler) ListMessages(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的房間ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	cursor, _ := strconv.ParseUint(c.DefaultQuery("cursor", "0"), 10, 32)

	messages, err := h.messageService.ListRoomMessages(roomID, limit, uint(cursor))
	if err != nil {
		respondError(c, err)
		return
	}

	// 回傳下一頁的游標，沒有更多資料時維持原值
	nextCursor := uint(cursor)
	if len(messages) > 0 {
		nextCursor = messages[len(messages)-1].ID
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":    messages,
		"next_cursor": nextCursor,
	})
}

// DeleteMessage 處理刪除訊息的請求，只有發送者或房間管理員可以刪除
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的訊息ID"})
		return
	}

	if err := h.messageService.DeleteMessage(messageID, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "訊息已刪除"})
}
