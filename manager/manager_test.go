package manager

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-server/config"
	"agent-server/request"
)

func newTestManager() *Manager {
	cfg := &config.Config{OpenAI: config.OpenAIConfig{
		Model:           "gpt-4o",
		AvailableModels: []string{"gpt-3.5-turbo", "gpt-4o"},
	}}
	return NewManager(cfg, zerolog.Nop())
}

func TestCreateAndListAgents(t *testing.T) {
	m := newTestManager()

	first := m.CreateAgent(request.AgentCreateRequest{Name: "researcher", Description: "does research"})
	second := m.CreateAgent(request.AgentCreateRequest{Name: "coder", Description: "writes code", Model: "gpt-3.5-turbo"})

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "gpt-4o", first.Model)
	assert.Equal(t, "ready", first.Status)
	assert.Equal(t, "gpt-3.5-turbo", second.Model)

	listed := m.ListAgents()
	require.Len(t, listed, 2)
	assert.Equal(t, "researcher", listed[0].Name)
	assert.Equal(t, "coder", listed[1].Name)
}

func TestCreateAgentModelFallback(t *testing.T) {
	m := newTestManager()

	meta := m.CreateAgent(request.AgentCreateRequest{Name: "x", Description: "y", Model: "llama-7b"})
	assert.Equal(t, "gpt-4o", meta.Model)
}

func TestGetAndDeleteAgent(t *testing.T) {
	m := newTestManager()
	meta := m.CreateAgent(request.AgentCreateRequest{Name: "x", Description: "y"})

	got, ok := m.GetAgent(meta.ID)
	require.True(t, ok)
	assert.Equal(t, meta, got)

	assert.True(t, m.DeleteAgent(meta.ID))
	assert.False(t, m.DeleteAgent(meta.ID))

	_, ok = m.GetAgent(meta.ID)
	assert.False(t, ok)
	assert.Empty(t, m.ListAgents())
}

func TestCreateTask(t *testing.T) {
	m := newTestManager()
	meta := m.CreateAgent(request.AgentCreateRequest{Name: "x", Description: "y"})

	task, err := m.CreateTask(meta.ID, request.TaskCreateRequest{Prompt: "do something"})
	require.NoError(t, err)
	assert.Equal(t, "completed", task.Status)
	assert.Equal(t, meta.ID, task.AgentID)

	tasks := m.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, task.TaskID, tasks[0].TaskID)

	result, ok := m.GetTaskResult(task.TaskID)
	require.True(t, ok)
	assert.Equal(t, task, result.Task)
	assert.NotNil(t, result.Result)
}

func TestCreateTaskUnknownAgent(t *testing.T) {
	m := newTestManager()

	_, err := m.CreateTask("no-such-agent", request.TaskCreateRequest{Prompt: "hi"})
	require.Error(t, err)

	_, ok := m.GetTaskResult("no-such-task")
	assert.False(t, ok)
}
