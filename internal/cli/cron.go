package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lichas/wecombot-go/internal/config"
	"github.com/Lichas/wecombot-go/internal/cron"
	"github.com/Lichas/wecombot-go/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cronName     string
	cronType     string
	cronSchedule string
	cronEvery    int64
	cronAt       string
	cronMessage  string
	cronMarkdown bool
	cronMention  []string
	cronBot      string
)

func init() {
	cronAddCmd.Flags().StringVarP(&cronName, "name", "n", "", "Job name (required)")
	cronAddCmd.Flags().StringVarP(&cronType, "type", "t", "every", "Schedule type: every, cron, once")
	cronAddCmd.Flags().StringVarP(&cronSchedule, "schedule", "s", "", "Cron expression (for type=cron)")
	cronAddCmd.Flags().Int64VarP(&cronEvery, "every", "e", 3600000, "Interval in milliseconds (for type=every)")
	cronAddCmd.Flags().StringVarP(&cronAt, "at", "a", "", "Send at time (for type=once, format: 2006-01-02 15:04:05)")
	cronAddCmd.Flags().StringVarP(&cronMessage, "message", "m", "", "Message content to send (required)")
	cronAddCmd.Flags().BoolVar(&cronMarkdown, "markdown", false, "Send the content as a markdown message")
	cronAddCmd.Flags().StringSliceVar(&cronMention, "mention", nil, "Member userids to mention")
	cronAddCmd.Flags().StringVarP(&cronBot, "bot", "b", "", "Named bot from config")
	cronAddCmd.MarkFlagRequired("name")
	cronAddCmd.MarkFlagRequired("message")

	cronCmd.AddCommand(cronAddCmd)
	cronCmd.AddCommand(cronListCmd)
	cronCmd.AddCommand(cronRemoveCmd)
	cronCmd.AddCommand(cronEnableCmd)
	cronCmd.AddCommand(cronDisableCmd)
	cronCmd.AddCommand(cronStartCmd)

	rootCmd.AddCommand(cronCmd)
}

// cronCmd cron 根命令
var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Manage scheduled message deliveries",
	Long:  "Add, list, remove and run scheduled messages sent to the group bot",
}

// cronAddCmd 添加定时发送任务
var cronAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a scheduled message",
	RunE: func(cmd *cobra.Command, args []string) error {
		service := cron.NewService(config.GetCronStorePath())

		// 构建 Schedule
		schedule := cron.Schedule{}
		switch cronType {
		case "every":
			schedule.Type = cron.ScheduleTypeEvery
			schedule.EveryMs = cronEvery
		case "cron":
			if cronSchedule == "" {
				return fmt.Errorf("--schedule is required for type=cron")
			}
			schedule.Type = cron.ScheduleTypeCron
			schedule.Expr = cronSchedule
		case "once":
			if cronAt == "" {
				return fmt.Errorf("--at is required for type=once")
			}
			schedule.Type = cron.ScheduleTypeOnce
			t, err := time.ParseInLocation("2006-01-02 15:04:05", cronAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid time format, use: 2006-01-02 15:04:05")
			}
			schedule.AtMs = t.UnixMilli()
		default:
			return fmt.Errorf("unknown schedule type %q, use: every, cron, once", cronType)
		}

		msgType := "text"
		if cronMarkdown {
			msgType = "markdown"
		}
		payload := cron.Payload{
			MsgType:       msgType,
			Content:       cronMessage,
			MentionedList: cronMention,
			Bot:           cronBot,
		}

		job, err := service.AddJob(cronName, schedule, payload)
		if err != nil {
			return fmt.Errorf("failed to add job: %w", err)
		}

		fmt.Printf("✓ job added: %s (%s)\n", job.Name, job.ID)
		return nil
	},
}

// cronListCmd 列出任务
var cronListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scheduled messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		service := cron.NewService(config.GetCronStorePath())

		jobs := service.ListJobs()
		if len(jobs) == 0 {
			fmt.Println("No scheduled messages")
			return nil
		}

		for _, job := range jobs {
			state := "enabled"
			if !job.Enabled {
				state = "disabled"
			}
			fmt.Printf("%s  %s [%s] %s: %s\n", job.ID, job.Name, state, job.Schedule.Type, logging.Truncate(job.Payload.Content, 60))
			if next, ok := job.GetNextRun(); ok {
				fmt.Printf("    next run: %s\n", next.Format("2006-01-02 15:04:05"))
			}
		}
		return nil
	},
}

// cronRemoveCmd 删除任务
var cronRemoveCmd = &cobra.Command{
	Use:   "remove <job_id>",
	Short: "Remove a scheduled message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := cron.NewService(config.GetCronStorePath())
		if !service.RemoveJob(args[0]) {
			return fmt.Errorf("job not found: %s", args[0])
		}
		fmt.Printf("✓ job removed: %s\n", args[0])
		return nil
	},
}

// cronEnableCmd 启用任务
var cronEnableCmd = &cobra.Command{
	Use:   "enable <job_id>",
	Short: "Enable a scheduled message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setJobEnabled(args[0], true)
	},
}

// cronDisableCmd 禁用任务
var cronDisableCmd = &cobra.Command{
	Use:   "disable <job_id>",
	Short: "Disable a scheduled message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setJobEnabled(args[0], false)
	},
}

func setJobEnabled(id string, enabled bool) error {
	service := cron.NewService(config.GetCronStorePath())
	job, ok := service.EnableJob(id, enabled)
	if !ok {
		return fmt.Errorf("job not found: %s", id)
	}
	fmt.Printf("✓ job %s enabled=%v\n", job.ID, job.Enabled)
	return nil
}

// cronStartCmd 前台运行定时发送服务
var cronStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the scheduler and deliver messages until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if _, err := logging.Init(config.GetLogsDir()); err != nil {
			fmt.Printf("⚠ logging init error: %v\n", err)
		}

		service := cron.NewService(config.GetCronStorePath())
		service.SetJobHandler(func(job *cron.Job) error {
			return deliverJob(cfg, job)
		})

		if err := service.Start(); err != nil {
			return err
		}
		defer service.Stop()

		fmt.Printf("%s scheduler running, %d job(s) loaded. Ctrl+C to stop.\n", logo, len(service.ListJobs()))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		fmt.Println("\nstopping scheduler...")
		return nil
	},
}

// deliverJob 把一个定时任务的消息发送到群里
func deliverJob(cfg *config.Config, job *cron.Job) error {
	key, err := config.ResolveKey(cfg, "", job.Payload.Bot)
	if err != nil {
		return err
	}

	bot, err := newBotWithKey(cfg, key)
	if err != nil {
		return err
	}

	msg, err := job.Payload.BuildMessage()
	if err != nil {
		return err
	}

	resp, err := bot.Send(msg)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("wecom api error: errcode=%d errmsg=%s", resp.ErrCode, resp.ErrMsg)
	}

	if lg := logging.Get(); lg != nil && lg.Cron != nil {
		lg.Cron.Printf("delivered job=%s name=%s msgtype=%s", job.ID, job.Name, msg.MsgType)
	}
	return nil
}
