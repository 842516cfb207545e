package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agent-server/models"
	"agent-server/request"
	"agent-server/service"
)

// ListAgents 列出管理端注册的全部agent
func (h *Handler) ListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": h.mgr.ListAgents()})
}

// CreateAgent 注册新agent
func (h *Handler) CreateAgent(c *gin.Context) {
	req := &request.AgentCreateRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:        service.CodeValidationError,
			ErrorMessage: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, h.mgr.CreateAgent(*req))
}

// GetAgent 查询agent详情
func (h *Handler) GetAgent(c *gin.Context) {
	meta, ok := h.mgr.GetAgent(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:        service.CodeAgentNotFound,
			ErrorMessage: "agent not found",
		})
		return
	}
	c.JSON(http.StatusOK, meta)
}

// DeleteAgent 删除agent
func (h *Handler) DeleteAgent(c *gin.Context) {
	if !h.mgr.DeleteAgent(c.Param("id")) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:        service.CodeAgentNotFound,
			ErrorMessage: "agent not found",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateTask 给agent创建任务
func (h *Handler) CreateTask(c *gin.Context) {
	req := &request.TaskCreateRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:        service.CodeValidationError,
			ErrorMessage: err.Error(),
		})
		return
	}

	task, err := h.mgr.CreateTask(c.Param("id"), *req)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:        service.CodeAgentNotFound,
			ErrorMessage: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListTasks 列出全部任务
func (h *Handler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.mgr.ListTasks())
}

// GetTaskResult 查询任务结果
func (h *Handler) GetTaskResult(c *gin.Context) {
	result, ok := h.mgr.GetTaskResult(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:        service.CodeTaskNotFound,
			ErrorMessage: "task not found",
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
