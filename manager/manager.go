package manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agent-server/config"
	"agent-server/models"
	"agent-server/request"
)

// Manager 管理端的agent与任务注册表。只存在进程内存里，
// 不落盘，进程重启即清空。内部map用锁保护。
type Manager struct {
	mu  sync.Mutex
	cfg *config.Config
	log zerolog.Logger

	agents     map[string]models.AgentMeta
	agentOrder []string

	tasks     map[string]models.AgentTask
	taskOrder []string

	results map[string]map[string]interface{}
}

// NewManager 创建Manager
func NewManager(cfg *config.Config, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:     cfg,
		log:     log,
		agents:  make(map[string]models.AgentMeta),
		tasks:   make(map[string]models.AgentTask),
		results: make(map[string]map[string]interface{}),
	}
}

// ListAgents 按注册顺序返回全部agent
func (m *Manager) ListAgents() []models.AgentMeta {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.AgentMeta, 0, len(m.agentOrder))
	for _, id := range m.agentOrder {
		out = append(out, m.agents[id])
	}
	return out
}

// CreateAgent 注册一个新agent。模型名不在允许列表时回退到默认模型
func (m *Manager) CreateAgent(req request.AgentCreateRequest) models.AgentMeta {
	model := req.Model
	if model == "" {
		model = m.cfg.OpenAI.Model
	}
	if !m.cfg.ModelAvailable(model) {
		m.log.Warn().Str("model", model).Str("fallback", m.cfg.OpenAI.Model).Msg("invalid model, using default")
		model = m.cfg.OpenAI.Model
	}

	tools := req.Tools
	if tools == nil {
		tools = []string{}
	}

	meta := models.AgentMeta{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Model:       model,
		Tools:       tools,
		Status:      "ready",
		CreatedAt:   time.Now().Format(time.RFC3339),
	}

	m.mu.Lock()
	m.agents[meta.ID] = meta
	m.agentOrder = append(m.agentOrder, meta.ID)
	m.mu.Unlock()

	m.log.Info().Str("agent_id", meta.ID).Str("name", meta.Name).Msg("agent created")
	return meta
}

// GetAgent 查询agent信息
func (m *Manager) GetAgent(id string) (models.AgentMeta, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, ok := m.agents[id]
	return meta, ok
}

// DeleteAgent 删除agent，不存在时返回false
func (m *Manager) DeleteAgent(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.agents[id]; !ok {
		return false
	}
	delete(m.agents, id)
	for i, existing := range m.agentOrder {
		if existing == id {
			m.agentOrder = append(m.agentOrder[:i], m.agentOrder[i+1:]...)
			break
		}
	}
	m.log.Info().Str("agent_id", id).Msg("agent deleted")
	return true
}

// CreateTask 给指定agent创建任务。任务当前没有异步执行器，
// 创建后直接标记完成，与原有行为一致。
func (m *Manager) CreateTask(agentID string, req request.TaskCreateRequest) (models.AgentTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.agents[agentID]; !ok {
		return models.AgentTask{}, fmt.Errorf("agent %s not found", agentID)
	}

	task := models.AgentTask{
		TaskID:    uuid.NewString(),
		AgentID:   agentID,
		Prompt:    req.Prompt,
		Status:    "completed",
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	m.tasks[task.TaskID] = task
	m.taskOrder = append(m.taskOrder, task.TaskID)

	m.log.Info().Str("task_id", task.TaskID).Str("agent_id", agentID).Msg("task created")
	return task, nil
}

// ListTasks 按创建顺序返回全部任务
func (m *Manager) ListTasks() []models.AgentTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.AgentTask, 0, len(m.taskOrder))
	for _, id := range m.taskOrder {
		out = append(out, m.tasks[id])
	}
	return out
}

// GetTaskResult 返回任务及其结果快照，任务不存在时返回false
func (m *Manager) GetTaskResult(id string) (models.TaskResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return models.TaskResult{}, false
	}

	result := m.results[id]
	if result == nil {
		result = map[string]interface{}{}
	}
	return models.TaskResult{Task: task, Result: result}, true
}
