package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus_hub/internal/service"
)

// PointHandler 處理積分查詢
type PointHandler struct {
	pointService *service.PointService
}

// NewPointHandler 創建一個新的 PointHandler 實例
func NewPointHandler(pointService *service.PointService) *PointHandler {
	return &PointHandler{pointService: pointService}
}

// GetPoints 回傳呼叫者目前的積分總和與最近異動
func (h *PointHandler) GetPoints(c *gin.Context) {
	total, recent, err := h.pointService.Balance(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "無法讀取積分"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        total,
		"transactions": recent,
	})
}
