package wecom

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownMessageSerialization(t *testing.T) {
	msg := NewMarkdownMessage("> hello world")

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Equal(t, `{"msgtype":"markdown","markdown":{"content":"> hello world"}}`, string(data))
}

func TestTextMessageSerialization(t *testing.T) {
	msg := NewTextMessage("hi").MentionUsers("1000")

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Equal(t, `{"msgtype":"text","text":{"content":"hi","mentioned_list":["1000"]}}`, string(data))
}

func TestTextMessageOmitsEmptyMentions(t *testing.T) {
	// 未设置提醒列表时不输出 mentioned_* 字段
	data, err := json.Marshal(NewTextMessage("hi"))
	require.NoError(t, err)
	assert.Equal(t, `{"msgtype":"text","text":{"content":"hi"}}`, string(data))
}

func TestTextMessageMentionMobiles(t *testing.T) {
	msg := NewTextMessage("hi").MentionMobiles("13800001111", "@all")

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Equal(t, `{"msgtype":"text","text":{"content":"hi","mentioned_mobile_list":["13800001111","@all"]}}`, string(data))
}

func TestMentionBuilderChaining(t *testing.T) {
	msg := NewTextMessage("hi")
	assert.Same(t, msg, msg.MentionUsers("1000").MentionMobiles("13800001111"))

	// 非文本消息上链式调用不生效也不报错
	md := NewMarkdownMessage("# t")
	assert.Same(t, md, md.MentionUsers("1000"))
	assert.Nil(t, md.Text)
}

func TestFileMessageSerialization(t *testing.T) {
	data, err := json.Marshal(NewFileMessage("MEDIA_ID_1"))
	require.NoError(t, err)
	assert.Equal(t, `{"msgtype":"file","file":{"media_id":"MEDIA_ID_1"}}`, string(data))
}

func TestNewsMessageSerialization(t *testing.T) {
	msg := NewNewsMessage(Article{
		Title:       "中秋节礼品领取",
		Description: "今年中秋节公司有豪礼相送",
		URL:         "www.qq.com",
		PicURL:      "http://res.mail.qq.com/node/ww/wwopenmng/images/independent/doc/test_pic_msg1.png",
	})
	require.NoError(t, msg.Validate())

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "msgtype")
	assert.Contains(t, decoded, "news")
	assert.NotContains(t, decoded, "text")

	var news NewsContent
	require.NoError(t, json.Unmarshal(decoded["news"], &news))
	require.Len(t, news.Articles, 1)
	assert.Equal(t, "中秋节礼品领取", news.Articles[0].Title)
	assert.Equal(t, "www.qq.com", news.Articles[0].URL)
}

func TestImageMessageSerialization(t *testing.T) {
	msg := NewImageMessage(NewImage([]byte("wecom bot image payload")))
	require.NoError(t, msg.Validate())

	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Equal(t, `{"msgtype":"image","image":{"base64":"d2Vjb20gYm90IGltYWdlIHBheWxvYWQ=","md5":"85198b64bd2cbb1f54d3bb3e0893e66a"}}`, string(data))
}

func TestValidate(t *testing.T) {
	tooManyArticles := make([]Article, 9)
	for i := range tooManyArticles {
		tooManyArticles[i] = Article{Title: "t", URL: "u"}
	}

	tests := []struct {
		name    string
		msg     *Message
		wantErr bool
	}{
		{"valid text", NewTextMessage("hi"), false},
		{"empty text", NewTextMessage(""), true},
		{"text too long", NewTextMessage(strings.Repeat("a", 2049)), true},
		{"text at limit", NewTextMessage(strings.Repeat("a", 2048)), false},
		{"valid markdown", NewMarkdownMessage("# hi"), false},
		{"empty markdown", NewMarkdownMessage(""), true},
		{"markdown too long", NewMarkdownMessage(strings.Repeat("a", 4097)), true},
		{"empty news", NewNewsMessage(), true},
		{"valid news", NewNewsMessage(Article{Title: "t", URL: "u"}), false},
		{"too many articles", NewNewsMessage(tooManyArticles...), true},
		{"article missing title", NewNewsMessage(Article{URL: "u"}), true},
		{"article missing url", NewNewsMessage(Article{Title: "t"}), true},
		{"article title too long", NewNewsMessage(Article{Title: strings.Repeat("a", 129), URL: "u"}), true},
		{"article desc too long", NewNewsMessage(Article{Title: "t", URL: "u", Description: strings.Repeat("a", 513)}), true},
		{"valid file", NewFileMessage("MEDIA_ID"), false},
		{"empty media id", NewFileMessage(""), true},
		{"empty image", NewImageMessage(NewImage(nil)), true},
		{"unknown msgtype", &Message{MsgType: "voice"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidMessage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
