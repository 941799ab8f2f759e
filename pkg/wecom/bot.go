package wecom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://qyapi.weixin.qq.com/cgi-bin/webhook"
	defaultTimeout = 10 * time.Second
)

// BotConfig 机器人客户端配置
type BotConfig struct {
	// Key 创建群机器人时平台下发的 webhook key（必填）
	Key string
	// APIBase 接口地址前缀，留空使用官方地址，测试时可指向本地 server
	APIBase string
	// Client 自定义 HTTP 客户端，留空使用 10 秒超时的默认客户端
	Client *http.Client
}

// Bot 群机器人客户端。构造后不可变，可被多个 goroutine 并发使用，
// 每次调用至多发起一次 HTTP 往返，不做重试。
type Bot struct {
	sendURL   string
	uploadURL string
	client    *http.Client
}

// NewBot 用 webhook key 创建机器人客户端
func NewBot(key string) (*Bot, error) {
	return NewBotFromConfig(&BotConfig{Key: key})
}

// NewBotFromConfig 按配置创建机器人客户端
func NewBotFromConfig(cfg *BotConfig) (*Bot, error) {
	if cfg == nil || strings.TrimSpace(cfg.Key) == "" {
		return nil, ErrKeyNotFound
	}

	base := cfg.APIBase
	if base == "" {
		base = defaultAPIBase
	}
	base = strings.TrimSuffix(base, "/")

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	key := url.QueryEscape(cfg.Key)
	return &Bot{
		sendURL:   fmt.Sprintf("%s/send?key=%s", base, key),
		uploadURL: fmt.Sprintf("%s/upload_media?key=%s", base, key),
		client:    client,
	}, nil
}

// Send 同步发送消息。本地校验失败、网络失败、应答解析失败时返回错误；
// HTTP 往返成功但 errcode 非 0 属于接口层失败，由调用方检查应答。
func (b *Bot) Send(msg *Message) (*SendResp, error) {
	return b.SendContext(context.Background(), msg)
}

// SendContext 同步发送消息，使用调用方提供的 context
func (b *Bot) SendContext(ctx context.Context, msg *Message) (*SendResp, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.sendURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var ret SendResp
	if err := b.do(req, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// SendResult 异步发送的结果，Resp 与 Err 恰好一个非空
type SendResult struct {
	Resp *SendResp
	Err  error
}

// SendAsync 异步发送消息，语义与 Send 一致。
// 返回的 channel 缓冲为 1，恰好投递一个结果后关闭，不接收也不会泄漏 goroutine。
func (b *Bot) SendAsync(msg *Message) <-chan SendResult {
	return b.SendAsyncContext(context.Background(), msg)
}

// SendAsyncContext 异步发送消息，使用调用方提供的 context
func (b *Bot) SendAsyncContext(ctx context.Context, msg *Message) <-chan SendResult {
	ch := make(chan SendResult, 1)
	go func() {
		defer close(ch)
		resp, err := b.SendContext(ctx, msg)
		ch <- SendResult{Resp: resp, Err: err}
	}()
	return ch
}

// Upload 上传本地文件，返回的 media_id 用于构造文件消息
func (b *Bot) Upload(mediaType MediaType, path string) (*UploadResp, error) {
	return b.UploadContext(context.Background(), mediaType, path)
}

// UploadContext 上传本地文件，使用调用方提供的 context。
// 文件读取失败时直接返回，不发起网络请求。
func (b *Bot) UploadContext(ctx context.Context, mediaType MediaType, path string) (*UploadResp, error) {
	if !mediaType.valid() {
		return nil, fmt.Errorf("%w: %q", ErrMediaType, string(mediaType))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}

	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)
	part, err := form.CreateFormFile("media", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	uploadURL := fmt.Sprintf("%s&type=%s", b.uploadURL, mediaType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var ret UploadResp
	if err := b.do(req, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// SendImageFile 读取本地图片并作为图片消息发送
func (b *Bot) SendImageFile(path string) (*SendResp, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return b.Send(NewImageMessage(img))
}

// do 发起请求并解析 JSON 应答，5xx 视为服务端错误
func (b *Bot) do(req *http.Request, out interface{}) error {
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("wecom request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("wecom server error: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read wecom response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode wecom response: %w", err)
	}
	return nil
}
