package main

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agent-server/agent"
	"agent-server/config"
	"agent-server/handler"
	"agent-server/llm"
	"agent-server/logger"
	"agent-server/manager"
	"agent-server/router"
	"agent-server/service"
	"agent-server/tools"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	// 启动时解析工具目录，缺少SerpAPI密钥时跳过google_search
	catalog, err := tools.NewCatalog(cfg.Search.SerpAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build tool catalog")
	}
	if cfg.Search.SerpAPIKey == "" {
		log.Warn().Msg("SERPAPI_API_KEY not set, google_search disabled")
	}

	ctx := context.Background()
	chatModel, err := llm.NewChatModel(ctx, cfg.OpenAI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init chat model")
	}

	runner := agent.NewReactRunner(chatModel, log)
	wrapper := agent.NewWrapper(catalog, runner, cfg.Agent.Timeout, log)
	svc := service.NewAgentService(cfg, wrapper, catalog, log)
	mgr := manager.NewManager(cfg, log)
	h := handler.New(cfg, svc, mgr, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// 注册业务路由
	router.RegisterRoutes(r, h)

	log.Info().
		Str("addr", cfg.GetServerAddr()).
		Str("model", cfg.OpenAI.Model).
		Strs("tools", catalog.Names()).
		Msg("server starting")

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
