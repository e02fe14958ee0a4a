package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/service"
)

// ReactionHandler 處理訊息回應相關的請求
type ReactionHandler struct {
	reactionService *service.ReactionService
}

// NewReactionHandler 創建一個新的 ReactionHandler 實例
func NewReactionHandler(reactionService *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// SetReaction 新增或改寫呼叫者在這則訊息上的回應
// 重複送出相同類型會得到 409 與 duplicate_reaction 代碼，客戶端應視為 no-op
func (h *ReactionHandler) SetReaction(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的訊息ID"})
		return
	}

	var input struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := h.reactionService.SetReaction(messageID, currentUserID(c), input.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"action": string(action)})
}

// RemoveReaction 移除呼叫者在這則訊息上指定類型的回應
// 類型不符或本來就沒有回應時 removed 為 false，不是錯誤
func (h *ReactionHandler) RemoveReaction(c *gin.Context) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不存在的訊息ID"})
		return
	}

	var input struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	removed, err := h.reactionService.RemoveReaction(messageID, currentUserID(c), input.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
