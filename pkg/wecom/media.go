package wecom

import (
	"fmt"
	"strings"
)

// MediaType 上传接口的媒体类型
type MediaType string

const (
	// MediaTypeFile 普通文件
	MediaTypeFile MediaType = "file"
	// MediaTypeImage 图片文件
	MediaTypeImage MediaType = "image"
	// MediaTypeVoice 语音文件
	MediaTypeVoice MediaType = "voice"
	// MediaTypeVideo 视频文件
	MediaTypeVideo MediaType = "video"
)

// ParseMediaType 解析媒体类型字符串，大小写不敏感
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(s) {
	case "file":
		return MediaTypeFile, nil
	case "image":
		return MediaTypeImage, nil
	case "voice":
		return MediaTypeVoice, nil
	case "video":
		return MediaTypeVideo, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrMediaType, s)
	}
}

// String 返回媒体类型的字符串形式
func (t MediaType) String() string {
	return string(t)
}

// valid 检查媒体类型取值是否合法
func (t MediaType) valid() bool {
	switch t {
	case MediaTypeFile, MediaTypeImage, MediaTypeVoice, MediaTypeVideo:
		return true
	}
	return false
}
