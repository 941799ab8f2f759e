package cron

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Lichas/wecombot-go/pkg/wecom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")

	service := NewService(storePath)
	require.NotNil(t, service)

	status := service.Status()
	assert.False(t, status["running"].(bool))
	assert.Equal(t, 0, status["totalJobs"])
	assert.Equal(t, storePath, status["storePath"])
}

func TestAddJob(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")
	service := NewService(storePath)

	schedule := Schedule{Type: ScheduleTypeEvery, EveryMs: 1000}
	payload := Payload{MsgType: "text", Content: "日报提醒"}

	job, err := service.AddJob("daily reminder", schedule, payload)
	require.NoError(t, err)
	require.NotNil(t, job)

	assert.Equal(t, "daily reminder", job.Name)
	assert.Equal(t, ScheduleTypeEvery, job.Schedule.Type)
	assert.Equal(t, int64(1000), job.Schedule.EveryMs)
	assert.Equal(t, "日报提醒", job.Payload.Content)
	assert.True(t, job.Enabled)
	assert.NotEmpty(t, job.ID)

	assert.Len(t, service.ListJobs(), 1)
}

func TestRemoveJob(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")
	service := NewService(storePath)

	job, _ := service.AddJob("test", Schedule{Type: ScheduleTypeEvery, EveryMs: 1000}, Payload{Content: "hi"})

	assert.True(t, service.RemoveJob(job.ID))
	assert.Len(t, service.ListJobs(), 0)
	assert.False(t, service.RemoveJob("non-existent"))
}

func TestEnableJob(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")
	service := NewService(storePath)

	job, _ := service.AddJob("test", Schedule{Type: ScheduleTypeEvery, EveryMs: 1000}, Payload{Content: "hi"})
	assert.True(t, job.Enabled)

	updated, ok := service.EnableJob(job.ID, false)
	assert.True(t, ok)
	assert.False(t, updated.Enabled)

	updated, ok = service.EnableJob(job.ID, true)
	assert.True(t, ok)
	assert.True(t, updated.Enabled)

	_, ok = service.EnableJob("non-existent", false)
	assert.False(t, ok)
}

func TestJobsPersistAcrossServices(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")

	service := NewService(storePath)
	job, err := service.AddJob("persisted", Schedule{Type: ScheduleTypeCron, Expr: "0 9 * * *"}, Payload{
		MsgType:       "markdown",
		Content:       "# 晨会提醒",
		MentionedList: []string{"@all"},
	})
	require.NoError(t, err)

	// 新建服务实例从同一文件加载
	reloaded := NewService(storePath)
	found, ok := reloaded.GetJob(job.ID)
	require.True(t, ok)
	assert.Equal(t, "persisted", found.Name)
	assert.Equal(t, "0 9 * * *", found.Schedule.Expr)
	assert.Equal(t, "# 晨会提醒", found.Payload.Content)
	assert.Equal(t, []string{"@all"}, found.Payload.MentionedList)
}

func TestGetNextRun(t *testing.T) {
	t.Run("every", func(t *testing.T) {
		job := NewJob("j", Schedule{Type: ScheduleTypeEvery, EveryMs: 60000}, Payload{Content: "hi"})
		next, ok := job.GetNextRun()
		require.True(t, ok)
		assert.True(t, next.After(time.Now()))
	})

	t.Run("cron expression", func(t *testing.T) {
		job := NewJob("j", Schedule{Type: ScheduleTypeCron, Expr: "0 9 * * *"}, Payload{Content: "hi"})
		next, ok := job.GetNextRun()
		require.True(t, ok)
		assert.Equal(t, 9, next.Hour())
	})

	t.Run("invalid cron expression", func(t *testing.T) {
		job := NewJob("j", Schedule{Type: ScheduleTypeCron, Expr: "not a cron"}, Payload{Content: "hi"})
		_, ok := job.GetNextRun()
		assert.False(t, ok)
	})

	t.Run("once in the past", func(t *testing.T) {
		job := NewJob("j", Schedule{Type: ScheduleTypeOnce, AtMs: time.Now().Add(-time.Hour).UnixMilli()}, Payload{Content: "hi"})
		_, ok := job.GetNextRun()
		assert.False(t, ok)
	})

	t.Run("disabled job", func(t *testing.T) {
		job := NewJob("j", Schedule{Type: ScheduleTypeEvery, EveryMs: 1000}, Payload{Content: "hi"})
		job.Enabled = false
		_, ok := job.GetNextRun()
		assert.False(t, ok)
	})
}

func TestPayloadBuildMessage(t *testing.T) {
	t.Run("text with mentions", func(t *testing.T) {
		p := Payload{MsgType: "text", Content: "hi", MentionedList: []string{"1000"}}
		msg, err := p.BuildMessage()
		require.NoError(t, err)
		assert.Equal(t, wecom.MsgTypeText, msg.MsgType)
		require.NotNil(t, msg.Text)
		assert.Equal(t, []string{"1000"}, msg.Text.MentionedList)
	})

	t.Run("msgtype defaults to text", func(t *testing.T) {
		p := Payload{Content: "hi"}
		msg, err := p.BuildMessage()
		require.NoError(t, err)
		assert.Equal(t, wecom.MsgTypeText, msg.MsgType)
	})

	t.Run("markdown", func(t *testing.T) {
		p := Payload{MsgType: "markdown", Content: "# hi"}
		msg, err := p.BuildMessage()
		require.NoError(t, err)
		assert.Equal(t, wecom.MsgTypeMarkdown, msg.MsgType)
	})

	t.Run("unsupported type", func(t *testing.T) {
		p := Payload{MsgType: "news", Content: "hi"}
		_, err := p.BuildMessage()
		assert.Error(t, err)
	})
}

func TestServiceStartExecutesJobs(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")
	service := NewService(storePath)

	done := make(chan *Job, 1)
	service.SetJobHandler(func(job *Job) error {
		select {
		case done <- job:
		default:
		}
		return nil
	})

	_, err := service.AddJob("fast", Schedule{Type: ScheduleTypeEvery, EveryMs: 10}, Payload{Content: "tick"})
	require.NoError(t, err)

	require.NoError(t, service.Start())
	defer service.Stop()

	select {
	case job := <-done:
		assert.Equal(t, "fast", job.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not executed in time")
	}
}
