package request

import (
	"fmt"
	"strings"
)

// QueryRequest 提交给agent的查询请求
type QueryRequest struct {
	Query         string   `json:"query" binding:"required"`
	MaxIterations *int     `json:"max_iterations,omitempty"`
	Tools         []string `json:"tools,omitempty"`
}

// Validate 检查绑定之后的语义约束
func (r *QueryRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("field 'query' must not be blank")
	}
	return nil
}

// AgentCreateRequest 管理端注册agent的请求
type AgentCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Model       string   `json:"model,omitempty"`
	Tools       []string `json:"tools,omitempty"`
}

// TaskCreateRequest 管理端创建任务的请求
type TaskCreateRequest struct {
	Prompt     string                 `json:"prompt" binding:"required"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}
