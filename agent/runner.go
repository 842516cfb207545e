package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	einoagent "github.com/cloudwego/eino/flow/agent"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	callbackutils "github.com/cloudwego/eino/utils/callbacks"
	"github.com/rs/zerolog"
)

// Outcome 外部agent一次运行的结果
type Outcome struct {
	Result     string
	Thinking   string
	Iterations int
}

// Runner 外部agent能力的唯一入口。推理/工具调用循环整体在实现方内部，
// 这一层不感知其启发式细节；实现方保证在有限迭代内返回文本或报错。
type Runner interface {
	Run(ctx context.Context, query string, tools []tool.BaseTool, maxIterations int) (*Outcome, error)
}

// ReactRunner 基于eino预置ReAct agent的Runner实现
type ReactRunner struct {
	chatModel model.ToolCallingChatModel
	log       zerolog.Logger
}

// NewReactRunner 创建ReactRunner
func NewReactRunner(chatModel model.ToolCallingChatModel, log zerolog.Logger) *ReactRunner {
	return &ReactRunner{chatModel: chatModel, log: log}
}

// Run 每次调用构建一个一次性的ReAct agent。一次迭代等于一轮模型推理
// 加一轮工具执行，对应图里的两步，所以MaxStep取2*maxIterations。
// 迭代数和thinking轨迹通过eino回调旁路采集。
func (r *ReactRunner) Run(ctx context.Context, query string, agentTools []tool.BaseTool, maxIterations int) (*Outcome, error) {
	ragent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: r.chatModel,
		ToolsConfig:      compose.ToolsNodeConfig{Tools: agentTools},
		MaxStep:          2 * maxIterations,
	})
	if err != nil {
		return nil, fmt.Errorf("build react agent: %w", err)
	}

	recorder := newTraceRecorder()
	messages := []*schema.Message{schema.UserMessage(query)}

	answer, err := ragent.Generate(ctx, messages,
		einoagent.WithComposeOptions(compose.WithCallbacks(recorder.handler())))
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, fmt.Errorf("agent returned empty message")
	}

	r.log.Debug().Int("iterations", recorder.iterations()).Msg("react agent finished")

	return &Outcome{
		Result:     answer.Content,
		Thinking:   recorder.thinking(),
		Iterations: recorder.iterations(),
	}, nil
}

// traceRecorder 通过回调采集模型轮次和轨迹行。
// 回调可能并发触发，内部用锁保护。
type traceRecorder struct {
	mu         sync.Mutex
	modelTurns int
	lines      []string
}

func newTraceRecorder() *traceRecorder {
	return &traceRecorder{}
}

func (t *traceRecorder) handler() callbacks.Handler {
	return callbackutils.NewHandlerHelper().
		ChatModel(&callbackutils.ModelCallbackHandler{
			OnEnd: t.onModelEnd,
		}).
		Tool(&callbackutils.ToolCallbackHandler{
			OnEnd: t.onToolEnd,
		}).
		Handler()
}

func (t *traceRecorder) onModelEnd(ctx context.Context, info *callbacks.RunInfo, output *model.CallbackOutput) context.Context {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.modelTurns++
	if output == nil || output.Message == nil {
		return ctx
	}

	if content := strings.TrimSpace(output.Message.Content); content != "" {
		t.lines = append(t.lines, fmt.Sprintf("Thought: %s", truncate(content)))
	}
	for _, call := range output.Message.ToolCalls {
		t.lines = append(t.lines, fmt.Sprintf("Action: %s(%s)", call.Function.Name, truncate(call.Function.Arguments)))
	}
	return ctx
}

func (t *traceRecorder) onToolEnd(ctx context.Context, info *callbacks.RunInfo, output *tool.CallbackOutput) context.Context {
	t.mu.Lock()
	defer t.mu.Unlock()

	if output == nil {
		return ctx
	}
	t.lines = append(t.lines, fmt.Sprintf("Observation: %s", truncate(output.Response)))
	return ctx
}

func (t *traceRecorder) iterations() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modelTurns
}

func (t *traceRecorder) thinking() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.Join(t.lines, "\n")
}

func truncate(s string) string {
	const limit = 256
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
