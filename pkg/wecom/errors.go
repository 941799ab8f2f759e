package wecom

import "errors"

var (
	// ErrKeyNotFound webhook key 未设置或为空白
	ErrKeyNotFound = errors.New("wecom bot key not set")
	// ErrInvalidMessage 消息未通过本地校验
	ErrInvalidMessage = errors.New("invalid message")
	// ErrMediaType 未知的上传媒体类型
	ErrMediaType = errors.New("unknown upload media type")
)
