package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"agent-server/agent"
	"agent-server/config"
	"agent-server/models"
	"agent-server/request"
	"agent-server/tools"
)

// 错误码常量，写进响应体的error字段
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeInvalidArgument     = "INVALID_ARGUMENT"
	CodeToolNotFound        = "TOOL_NOT_FOUND"
	CodeAgentExecutionError = "AGENT_EXECUTION_ERROR"
	CodeTimeout             = "TIMEOUT"
	CodeAgentNotFound       = "AGENT_NOT_FOUND"
	CodeTaskNotFound        = "TASK_NOT_FOUND"
	CodeInternalError       = "INTERNAL_ERROR"
)

// APIError 领域错误翻译成的HTTP状态码+机器可读错误码+可读消息
type APIError struct {
	Status  int
	Code    string
	Message string
}

// AgentService 查询编排：填默认值、委托wrapper、把领域错误翻成HTTP错误
type AgentService struct {
	cfg     *config.Config
	wrapper *agent.Wrapper
	catalog *tools.Catalog
	log     zerolog.Logger
}

// NewAgentService 创建AgentService
func NewAgentService(cfg *config.Config, wrapper *agent.Wrapper, catalog *tools.Catalog, log zerolog.Logger) *AgentService {
	return &AgentService{cfg: cfg, wrapper: wrapper, catalog: catalog, log: log}
}

// HandleQuery 执行一次agent查询。结构校验已经在HTTP层完成，
// 这里只处理语义校验和执行。
func (s *AgentService) HandleQuery(ctx context.Context, req request.QueryRequest) (*models.QueryResponse, *APIError) {
	maxIterations := s.cfg.Agent.MaxIterations
	if req.MaxIterations != nil {
		maxIterations = *req.MaxIterations
	}

	res, err := s.wrapper.Run(ctx, req.Query, req.Tools, maxIterations)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &models.QueryResponse{
		Result:        res.Result,
		Thinking:      res.Thinking,
		Iterations:    res.Iterations,
		ExecutionTime: res.ExecutionTime,
	}, nil
}

// ListTools 按注册顺序返回工具目录，永不失败
func (s *AgentService) ListTools() []models.ToolDescriptor {
	return s.catalog.Descriptors()
}

// mapError 把agent层的错误归一到HTTP错误，保证每条失败路径都有响应
func (s *AgentService) mapError(err error) *APIError {
	var invalidErr *agent.InvalidArgumentError
	if errors.As(err, &invalidErr) {
		return &APIError{Status: http.StatusBadRequest, Code: CodeInvalidArgument, Message: invalidErr.Error()}
	}

	var notFoundErr *agent.ToolNotFoundError
	if errors.As(err, &notFoundErr) {
		return &APIError{Status: http.StatusBadRequest, Code: CodeToolNotFound, Message: notFoundErr.Error()}
	}

	var execErr *agent.ExecutionError
	if errors.As(err, &execErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return &APIError{Status: http.StatusGatewayTimeout, Code: CodeTimeout, Message: execErr.Error()}
		}
		return &APIError{Status: http.StatusInternalServerError, Code: CodeAgentExecutionError, Message: execErr.Error()}
	}

	s.log.Error().Err(err).Msg("unclassified error from agent layer")
	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternalError, Message: err.Error()}
}
