// Package errs 定義核心流程使用的錯誤分類。
//
// 訊息管線與回應引擎的錯誤會帶著分類原樣回傳給呼叫端，
// handler 再依分類對應 HTTP 狀態碼。
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 是錯誤的分類
type Kind string

const (
	ValidationFailed    Kind = "validation_failed"    // 輸入格式錯誤
	PermissionDenied    Kind = "permission_denied"    // 不是成員或權限不足
	NotFound            Kind = "not_found"            // 房間/訊息不存在
	DuplicateReaction   Kind = "duplicate_reaction"   // 重複送出相同的回應
	PersistenceFailed   Kind = "persistence_failed"   // 寫入失敗
	ExternalUnavailable Kind = "external_unavailable" // 外部協作服務不可用
)

// Error 是帶分類的錯誤
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is 讓 errors.Is 可以用分類比對兩個錯誤
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New 建立一個帶分類的錯誤
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf 建立一個帶分類的錯誤，訊息使用格式化字串
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf 取出錯誤的分類，無法辨識時回傳 PersistenceFailed
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return PersistenceFailed
}

// HTTPStatus 將錯誤分類對應到 HTTP 狀態碼
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case ValidationFailed:
		return http.StatusBadRequest
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case DuplicateReaction:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
