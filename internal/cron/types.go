package cron

import (
	"fmt"
	"time"

	"github.com/Lichas/wecombot-go/pkg/wecom"
	"github.com/robfig/cron/v3"
)

// ScheduleType 调度类型
type ScheduleType string

const (
	// ScheduleTypeEvery 每隔一段时间执行
	ScheduleTypeEvery ScheduleType = "every"
	// ScheduleTypeCron Cron 表达式
	ScheduleTypeCron ScheduleType = "cron"
	// ScheduleTypeOnce 一次性任务
	ScheduleTypeOnce ScheduleType = "once"
)

// Schedule 任务调度配置
type Schedule struct {
	Type    ScheduleType `json:"type"`
	EveryMs int64        `json:"everyMs,omitempty"` // 每隔多少毫秒（ScheduleTypeEvery）
	Expr    string       `json:"expr,omitempty"`    // Cron 表达式（ScheduleTypeCron）
	AtMs    int64        `json:"atMs,omitempty"`    // 执行时间戳（ScheduleTypeOnce）
}

// Payload 任务负载：要发送到群里的消息
type Payload struct {
	MsgType         string   `json:"msgtype"` // text 或 markdown
	Content         string   `json:"content"`
	MentionedList   []string `json:"mentionedList,omitempty"`
	MentionedMobile []string `json:"mentionedMobileList,omitempty"`
	Bot             string   `json:"bot,omitempty"` // 使用的命名机器人（可选）
}

// BuildMessage 把负载转换成群机器人消息
func (p *Payload) BuildMessage() (*wecom.Message, error) {
	switch p.MsgType {
	case wecom.MsgTypeText, "":
		msg := wecom.NewTextMessage(p.Content)
		if len(p.MentionedList) > 0 {
			msg.MentionUsers(p.MentionedList...)
		}
		if len(p.MentionedMobile) > 0 {
			msg.MentionMobiles(p.MentionedMobile...)
		}
		return msg, nil
	case wecom.MsgTypeMarkdown:
		return wecom.NewMarkdownMessage(p.Content), nil
	default:
		return nil, fmt.Errorf("unsupported scheduled msgtype %q", p.MsgType)
	}
}

// Job 定时发送任务
type Job struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Schedule Schedule `json:"schedule"`
	Payload  Payload  `json:"payload"`
	Enabled  bool     `json:"enabled"`
	Created  int64    `json:"created"`
}

// NewJob 创建新任务
func NewJob(name string, schedule Schedule, payload Payload) *Job {
	return &Job{
		ID:       generateJobID(),
		Name:     name,
		Schedule: schedule,
		Payload:  payload,
		Enabled:  true,
		Created:  time.Now().UnixMilli(),
	}
}

// generateJobID 生成任务 ID
func generateJobID() string {
	return fmt.Sprintf("job_%d", time.Now().UnixNano())
}

// GetNextRun 获取下次执行时间
func (j *Job) GetNextRun() (time.Time, bool) {
	if !j.Enabled {
		return time.Time{}, false
	}

	switch j.Schedule.Type {
	case ScheduleTypeEvery:
		if j.Schedule.EveryMs <= 0 {
			return time.Time{}, false
		}
		return time.Now().Add(time.Duration(j.Schedule.EveryMs) * time.Millisecond), true

	case ScheduleTypeCron:
		sched, err := cron.ParseStandard(j.Schedule.Expr)
		if err != nil {
			return time.Time{}, false
		}
		return sched.Next(time.Now()), true

	case ScheduleTypeOnce:
		at := time.UnixMilli(j.Schedule.AtMs)
		if at.Before(time.Now()) {
			return time.Time{}, false
		}
		return at, true

	default:
		return time.Time{}, false
	}
}
