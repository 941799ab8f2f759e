package cli

import (
	"fmt"

	"github.com/Lichas/wecombot-go/internal/config"
	"github.com/Lichas/wecombot-go/internal/logging"
	"github.com/Lichas/wecombot-go/pkg/wecom"
	"github.com/spf13/cobra"
)

var (
	uploadType string
	uploadSend bool
)

func init() {
	uploadCmd.Flags().StringVarP(&sendKey, "key", "k", "", "Webhook key (overrides config)")
	uploadCmd.Flags().StringVarP(&sendBot, "bot", "b", "", "Named bot from config")
	uploadCmd.Flags().StringVarP(&uploadType, "type", "t", "file", "Media type: file, image, voice, video")
	uploadCmd.Flags().BoolVarP(&uploadSend, "send", "s", false, "Send a file message with the uploaded media id")

	rootCmd.AddCommand(uploadCmd)
}

// uploadCmd 上传本地文件，获得 media_id
var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a local file and print its media id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mediaType, err := wecom.ParseMediaType(uploadType)
		if err != nil {
			return err
		}

		bot, err := newBot()
		if err != nil {
			return err
		}

		if _, err := logging.Init(config.GetLogsDir()); err != nil {
			fmt.Printf("⚠ logging init error: %v\n", err)
		}

		resp, err := bot.Upload(mediaType, args[0])
		if err != nil {
			return err
		}
		if !resp.OK() {
			return fmt.Errorf("wecom api error: errcode=%d errmsg=%s", resp.ErrCode, resp.ErrMsg)
		}

		if lg := logging.Get(); lg != nil && lg.Send != nil {
			lg.Send.Printf("uploaded type=%s media_id=%s", mediaType, resp.MediaID)
		}
		fmt.Printf("✓ uploaded, media_id: %s\n", resp.MediaID)

		if uploadSend {
			return deliver(wecom.NewFileMessage(resp.MediaID))
		}
		return nil
	},
}
