package router

import (
	"github.com/gin-gonic/gin"

	"agent-server/handler"
)

// RegisterRoutes 注册项目的所有HTTP路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/tools", h.ListTools)
	r.POST("/query", h.QueryAgent)

	// 管理端路由
	admin := r.Group("/admin")
	{
		admin.GET("/agents", h.ListAgents)
		admin.POST("/agents", h.CreateAgent)
		admin.GET("/agents/:id", h.GetAgent)
		admin.DELETE("/agents/:id", h.DeleteAgent)
		admin.POST("/agents/:id/tasks", h.CreateTask)
		admin.GET("/tasks", h.ListTasks)
		admin.GET("/tasks/:id", h.GetTaskResult)
	}
}
