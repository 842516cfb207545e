package models

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// QueryResponse agent查询的响应数据
type QueryResponse struct {
	Result        string  `json:"result"`
	Thinking      string  `json:"thinking"`
	Iterations    int     `json:"iterations"`
	ExecutionTime float64 `json:"execution_time"`
}

// ToolDescriptor 工具目录条目
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
}

// WelcomeResponse 根路径响应
type WelcomeResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// AgentMeta 管理端注册的agent信息
type AgentMeta struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Model       string   `json:"model"`
	Tools       []string `json:"tools"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
}

// AgentTask 管理端创建的任务记录
type AgentTask struct {
	TaskID    string `json:"task_id"`
	AgentID   string `json:"agent_id"`
	Prompt    string `json:"prompt"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// TaskResult 任务查询响应，任务加上其结果快照
type TaskResult struct {
	Task   AgentTask              `json:"task"`
	Result map[string]interface{} `json:"result"`
}
