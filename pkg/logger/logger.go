// Package logger 建立整個應用程式共用的 zap logger。
// logger 在 main 中建立後以參數傳給各個 service，不使用全域變數。
package logger

import (
	"go.uber.org/zap"
)

// New 建立 logger，debug 模式下輸出較易讀的開發格式
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
