package wecom

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"os"
)

// Image 待发送的图片数据，接口只支持 PNG 和 JPG 格式，
// 原始数据（base64 编码前）不超过 2MB。
type Image struct {
	content []byte
}

// NewImage 从原始字节创建图片
func NewImage(data []byte) *Image {
	return &Image{content: data}
}

// LoadImage 从本地文件读取图片
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return &Image{content: data}, nil
}

// Size 返回原始图片数据的字节数
func (i *Image) Size() int {
	return len(i.content)
}

// Encode 返回图片数据的 base64 编码和 MD5 校验值（小写十六进制）
func (i *Image) Encode() (string, string) {
	b64 := base64.StdEncoding.EncodeToString(i.content)
	sum := md5.Sum(i.content)
	return b64, fmt.Sprintf("%x", sum)
}
