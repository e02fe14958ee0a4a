package handlers

import (
	"strconv"

	"campus_hub/internal/errs"

	"github.com/gin-gonic/gin"
)

// respondError 依錯誤分類對應 HTTP 狀態碼，並附上穩定的錯誤代碼讓客戶端判斷
func respondError(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  string(errs.KindOf(err)),
	})
}

// currentUserID 取出中間件放進上下文的呼叫者 ID
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	id, _ := userID.(uint)
	return id
}

// parseIDParam 解析路徑中的數字 ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
