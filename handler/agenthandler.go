package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agent-server/config"
	"agent-server/manager"
	"agent-server/models"
	"agent-server/request"
	"agent-server/service"
)

// Handler 持有全部HTTP依赖，启动时构造一次
type Handler struct {
	cfg *config.Config
	svc *service.AgentService
	mgr *manager.Manager
	log zerolog.Logger
}

// New 创建Handler
func New(cfg *config.Config, svc *service.AgentService, mgr *manager.Manager, log zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, mgr: mgr, log: log}
}

// Root 根路径，返回欢迎信息
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.WelcomeResponse{
		Message: fmt.Sprintf("Welcome to the %s", h.cfg.API.Title),
		Version: h.cfg.API.Version,
	})
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "healthy"})
}

// ListTools 返回工具目录
func (h *Handler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListTools())
}

// QueryAgent 处理agent查询请求。结构校验失败短路为422，
// 语义错误和执行错误由service层给出状态码。
func (h *Handler) QueryAgent(c *gin.Context) {
	req := &request.QueryRequest{}

	// 绑定请求参数
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:        service.CodeValidationError,
			ErrorMessage: err.Error(),
		})
		return
	}

	// 验证请求参数
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:        service.CodeValidationError,
			ErrorMessage: err.Error(),
		})
		return
	}

	resp, apiErr := h.svc.HandleQuery(c.Request.Context(), *req)
	if apiErr != nil {
		c.JSON(apiErr.Status, models.ErrorResponse{
			Error:        apiErr.Code,
			ErrorMessage: apiErr.Message,
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
