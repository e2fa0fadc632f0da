package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	ServiceUnavailable  = 503
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrProfileNotFound    = errors.New("阅读画像不存在，请先完成引导")
	ErrBookNotFound       = errors.New("书目不存在")
	ErrSwipeActionInvalid = errors.New("无效的滑动操作")
	ErrAIUnavailable      = errors.New("AI服务未启用")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrProfileNotFound:    NotFound,
	ErrBookNotFound:       NotFound,
	ErrSwipeActionInvalid: BadRequest,
	ErrAIUnavailable:      ServiceUnavailable,
	UnExpectedError:       InternalServerError,
}

// CodeOf 按 errors.Is 匹配业务码，支持被包装的哨兵错误
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}
