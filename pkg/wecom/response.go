package wecom

// SendResp 发送接口的应答。ErrCode 为 0 表示成功，
// 其余取值是接口层面的失败，HTTP 往返本身是成功的。
type SendResp struct {
	ErrCode int64  `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// OK 是否发送成功
func (r *SendResp) OK() bool {
	return r.ErrCode == 0
}

// UploadResp 上传接口的应答，MediaID 仅在 ErrCode 为 0 时有效。
type UploadResp struct {
	ErrCode   int64  `json:"errcode"`
	ErrMsg    string `json:"errmsg"`
	Type      string `json:"type,omitempty"`
	MediaID   string `json:"media_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// OK 是否上传成功
func (r *UploadResp) OK() bool {
	return r.ErrCode == 0
}
