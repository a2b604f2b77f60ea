package inference

import (
	"context"
	"errors"
	"fmt"
)

// Generator 外部推理服务边界
// 引擎视其为不透明依赖：可能慢、可能失败；超时由调用方通过 ctx 供给，
// 核心内不做自动重试（重试策略属外部协作方职责）
type Generator interface {
	Generate(ctx context.Context, prompt string, contextFacts map[string]any) (string, error)
}

// 错误类别：transient 可按外部策略重试，fatal 原样上报
const (
	KindTransient = "transient"
	KindFatal     = "fatal"
)

// Error 推理调用失败
type Error struct {
	Kind   string
	Status int
	Msg    string
}

// Error 实现 error
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("inference %s error (status %d): %s", e.Kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("inference %s error: %s", e.Kind, e.Msg)
}

// IsTransient 判断是否可重试类失败
func IsTransient(err error) bool {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind == KindTransient
	}
	return false
}
