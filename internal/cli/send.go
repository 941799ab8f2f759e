package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Lichas/wecombot-go/internal/config"
	"github.com/Lichas/wecombot-go/internal/logging"
	"github.com/Lichas/wecombot-go/pkg/wecom"
	"github.com/spf13/cobra"
)

var (
	sendKey        string
	sendBot        string
	mentionUsers   []string
	mentionMobiles []string
	newsTitles     []string
	newsDescs      []string
	newsURLs       []string
	newsPicURLs    []string
)

func init() {
	sendCmd.PersistentFlags().StringVarP(&sendKey, "key", "k", "", "Webhook key (overrides config)")
	sendCmd.PersistentFlags().StringVarP(&sendBot, "bot", "b", "", "Named bot from config")

	sendTextCmd.Flags().StringSliceVar(&mentionUsers, "mention", nil, "Member userids to mention, use @all for everyone")
	sendTextCmd.Flags().StringSliceVar(&mentionMobiles, "mention-mobile", nil, "Member mobile numbers to mention")

	sendNewsCmd.Flags().StringSliceVar(&newsTitles, "title", nil, "Article title (repeatable, required)")
	sendNewsCmd.Flags().StringSliceVar(&newsURLs, "url", nil, "Article link (repeatable, required)")
	sendNewsCmd.Flags().StringSliceVar(&newsDescs, "desc", nil, "Article description (repeatable)")
	sendNewsCmd.Flags().StringSliceVar(&newsPicURLs, "picurl", nil, "Article picture link (repeatable)")
	sendNewsCmd.MarkFlagRequired("title")
	sendNewsCmd.MarkFlagRequired("url")

	sendCmd.AddCommand(sendTextCmd)
	sendCmd.AddCommand(sendMarkdownCmd)
	sendCmd.AddCommand(sendImageCmd)
	sendCmd.AddCommand(sendNewsCmd)
	sendCmd.AddCommand(sendFileCmd)

	rootCmd.AddCommand(sendCmd)
}

// sendCmd send 根命令
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to the group bot",
	Long:  "Send a text, markdown, image, news or file message to the WeCom group bot",
}

// sendTextCmd 发送文本消息
var sendTextCmd = &cobra.Command{
	Use:   "text <content>",
	Short: "Send a text message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := wecom.NewTextMessage(args[0])
		if len(mentionUsers) > 0 {
			msg.MentionUsers(mentionUsers...)
		}
		if len(mentionMobiles) > 0 {
			msg.MentionMobiles(mentionMobiles...)
		}
		return deliver(msg)
	},
}

// sendMarkdownCmd 发送 Markdown 消息
var sendMarkdownCmd = &cobra.Command{
	Use:   "markdown <content>",
	Short: "Send a markdown message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deliver(wecom.NewMarkdownMessage(args[0]))
	},
}

// sendImageCmd 发送图片消息
var sendImageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Send a local PNG/JPG file as an image message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := wecom.LoadImage(args[0])
		if err != nil {
			return err
		}
		return deliver(wecom.NewImageMessage(img))
	},
}

// sendNewsCmd 发送图文消息
var sendNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Send a news message (1-8 articles)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(newsTitles) != len(newsURLs) {
			return fmt.Errorf("--title and --url must be given the same number of times")
		}

		articles := make([]wecom.Article, len(newsTitles))
		for i := range newsTitles {
			articles[i] = wecom.Article{Title: newsTitles[i], URL: newsURLs[i]}
			if i < len(newsDescs) {
				articles[i].Description = newsDescs[i]
			}
			if i < len(newsPicURLs) {
				articles[i].PicURL = newsPicURLs[i]
			}
		}
		return deliver(wecom.NewNewsMessage(articles...))
	},
}

// sendFileCmd 发送文件消息
var sendFileCmd = &cobra.Command{
	Use:   "file <media_id>",
	Short: "Send a file message by media id (see: wecombot upload)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deliver(wecom.NewFileMessage(args[0]))
	},
}

// newBot 按 flag 和配置构造机器人客户端
func newBot() (*wecom.Bot, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	key, err := config.ResolveKey(cfg, sendKey, sendBot)
	if err != nil {
		return nil, err
	}

	return newBotWithKey(cfg, key)
}

// newBotWithKey 用已解析的 key 构造机器人客户端
func newBotWithKey(cfg *config.Config, key string) (*wecom.Bot, error) {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	return wecom.NewBotFromConfig(&wecom.BotConfig{
		Key:    key,
		Client: &http.Client{Timeout: timeout},
	})
}

// deliver 发送消息并检查接口应答
func deliver(msg *wecom.Message) error {
	bot, err := newBot()
	if err != nil {
		return err
	}

	if _, err := logging.Init(config.GetLogsDir()); err != nil {
		fmt.Printf("⚠ logging init error: %v\n", err)
	}

	resp, err := bot.Send(msg)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("wecom api error: errcode=%d errmsg=%s", resp.ErrCode, resp.ErrMsg)
	}

	if lg := logging.Get(); lg != nil && lg.Send != nil {
		lg.Send.Printf("sent msgtype=%s bot=%s", msg.MsgType, sendBot)
	}
	fmt.Printf("✓ %s message sent\n", msg.MsgType)
	return nil
}
