package wecom

import "fmt"

// 消息类型（msgtype 字段取值）
const (
	MsgTypeText     = "text"
	MsgTypeMarkdown = "markdown"
	MsgTypeImage    = "image"
	MsgTypeNews     = "news"
	MsgTypeFile     = "file"
)

// 企业微信群机器人接口文档规定的上限
const (
	maxTextBytes     = 2048
	maxMarkdownBytes = 4096
	maxTitleBytes    = 128
	maxDescBytes     = 512
	maxNewsArticles  = 8
	maxImageBytes    = 2 * 1024 * 1024
	// base64 每 3 字节原始数据编码为 4 字节
	maxImageEncodedBytes = (maxImageBytes + 2) / 3 * 4
)

// TextContent 文本消息内容
type TextContent struct {
	Content string `json:"content"`
	// MentionedList 需要 @ 的成员 userid 列表，"@all" 表示提醒所有人
	MentionedList []string `json:"mentioned_list,omitempty"`
	// MentionedMobileList 需要 @ 的成员手机号列表，拿不到 userid 时使用
	MentionedMobileList []string `json:"mentioned_mobile_list,omitempty"`
}

// MarkdownContent Markdown 消息内容
type MarkdownContent struct {
	Content string `json:"content"`
}

// ImageContent 图片消息内容，base64 编码的图片数据及其 MD5 校验值
type ImageContent struct {
	Base64 string `json:"base64"`
	MD5    string `json:"md5"`
}

// Article 图文消息中的一条图文
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	PicURL      string `json:"picurl,omitempty"`
}

// NewsContent 图文消息内容，1 到 8 条图文
type NewsContent struct {
	Articles []Article `json:"articles"`
}

// FileContent 文件消息内容，media_id 通过上传接口获得
type FileContent struct {
	MediaID string `json:"media_id"`
}

// Message 群机器人消息。MsgType 决定哪个变体生效，
// 序列化时只输出生效变体对应的字段。
type Message struct {
	MsgType  string           `json:"msgtype"`
	Text     *TextContent     `json:"text,omitempty"`
	Markdown *MarkdownContent `json:"markdown,omitempty"`
	Image    *ImageContent    `json:"image,omitempty"`
	News     *NewsContent     `json:"news,omitempty"`
	File     *FileContent     `json:"file,omitempty"`
}

// NewTextMessage 创建文本消息
func NewTextMessage(content string) *Message {
	return &Message{
		MsgType: MsgTypeText,
		Text:    &TextContent{Content: content},
	}
}

// NewMarkdownMessage 创建 Markdown 消息
func NewMarkdownMessage(content string) *Message {
	return &Message{
		MsgType:  MsgTypeMarkdown,
		Markdown: &MarkdownContent{Content: content},
	}
}

// NewImageMessage 从图片数据创建图片消息
func NewImageMessage(img *Image) *Message {
	b64, sum := img.Encode()
	return &Message{
		MsgType: MsgTypeImage,
		Image:   &ImageContent{Base64: b64, MD5: sum},
	}
}

// NewNewsMessage 创建图文消息
func NewNewsMessage(articles ...Article) *Message {
	return &Message{
		MsgType: MsgTypeNews,
		News:    &NewsContent{Articles: articles},
	}
}

// NewFileMessage 从 media_id 创建文件消息
func NewFileMessage(mediaID string) *Message {
	return &Message{
		MsgType: MsgTypeFile,
		File:    &FileContent{MediaID: mediaID},
	}
}

// MentionUsers 设置文本消息要 @ 的成员 userid 列表，返回自身便于链式调用。
// 对非文本消息不生效。
func (m *Message) MentionUsers(userIDs ...string) *Message {
	if m.Text != nil {
		m.Text.MentionedList = userIDs
	}
	return m
}

// MentionMobiles 设置文本消息要 @ 的成员手机号列表，返回自身便于链式调用。
// 对非文本消息不生效。
func (m *Message) MentionMobiles(mobiles ...string) *Message {
	if m.Text != nil {
		m.Text.MentionedMobileList = mobiles
	}
	return m
}

// Validate 按接口文档的限制做本地校验，发送前调用，
// 不合法的消息在发起网络请求之前就返回错误。
func (m *Message) Validate() error {
	switch m.MsgType {
	case MsgTypeText:
		if m.Text == nil || m.Text.Content == "" {
			return fmt.Errorf("%w: text content is empty", ErrInvalidMessage)
		}
		if len(m.Text.Content) > maxTextBytes {
			return fmt.Errorf("%w: text content exceeds %d bytes", ErrInvalidMessage, maxTextBytes)
		}

	case MsgTypeMarkdown:
		if m.Markdown == nil || m.Markdown.Content == "" {
			return fmt.Errorf("%w: markdown content is empty", ErrInvalidMessage)
		}
		if len(m.Markdown.Content) > maxMarkdownBytes {
			return fmt.Errorf("%w: markdown content exceeds %d bytes", ErrInvalidMessage, maxMarkdownBytes)
		}

	case MsgTypeImage:
		if m.Image == nil || m.Image.Base64 == "" {
			return fmt.Errorf("%w: image data is empty", ErrInvalidMessage)
		}
		if m.Image.MD5 == "" {
			return fmt.Errorf("%w: image md5 is empty", ErrInvalidMessage)
		}
		if len(m.Image.Base64) > maxImageEncodedBytes {
			return fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidMessage, maxImageBytes)
		}

	case MsgTypeNews:
		if m.News == nil || len(m.News.Articles) == 0 {
			return fmt.Errorf("%w: news requires at least one article", ErrInvalidMessage)
		}
		if len(m.News.Articles) > maxNewsArticles {
			return fmt.Errorf("%w: news allows at most %d articles", ErrInvalidMessage, maxNewsArticles)
		}
		for i, a := range m.News.Articles {
			if a.Title == "" {
				return fmt.Errorf("%w: article %d has no title", ErrInvalidMessage, i)
			}
			if a.URL == "" {
				return fmt.Errorf("%w: article %d has no url", ErrInvalidMessage, i)
			}
			if len(a.Title) > maxTitleBytes {
				return fmt.Errorf("%w: article %d title exceeds %d bytes", ErrInvalidMessage, i, maxTitleBytes)
			}
			if len(a.Description) > maxDescBytes {
				return fmt.Errorf("%w: article %d description exceeds %d bytes", ErrInvalidMessage, i, maxDescBytes)
			}
		}

	case MsgTypeFile:
		if m.File == nil || m.File.MediaID == "" {
			return fmt.Errorf("%w: file media_id is empty", ErrInvalidMessage)
		}

	default:
		return fmt.Errorf("%w: unknown msgtype %q", ErrInvalidMessage, m.MsgType)
	}

	return nil
}
