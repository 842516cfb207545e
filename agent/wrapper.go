package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agent-server/tools"
)

// RunResult agent运行结果加执行元数据
type RunResult struct {
	Result        string
	Thinking      string
	Iterations    int
	ExecutionTime float64
}

// Wrapper 在外部agent外面做输入校验、工具解析、计时和错误归一。
// 每个请求只尝试一次，不做重试。
type Wrapper struct {
	catalog *tools.Catalog
	runner  Runner
	timeout time.Duration
	log     zerolog.Logger
}

// NewWrapper 创建Wrapper。timeout为0表示不给单次运行设置截止时间，
// 外部provider挂起时请求会一直等下去。
func NewWrapper(catalog *tools.Catalog, runner Runner, timeout time.Duration, log zerolog.Logger) *Wrapper {
	return &Wrapper{catalog: catalog, runner: runner, timeout: timeout, log: log}
}

// Run 校验参数、解析工具、委托外部agent并测量耗时。
// toolNames为空时默认启用目录里的全部工具。
func (w *Wrapper) Run(ctx context.Context, query string, toolNames []string, maxIterations int) (*RunResult, error) {
	if maxIterations <= 0 {
		return nil, &InvalidArgumentError{
			Reason: fmt.Sprintf("max_iterations must be positive, got %d", maxIterations),
		}
	}

	if len(toolNames) == 0 {
		toolNames = w.catalog.Names()
	}
	resolved, missing := w.catalog.Resolve(toolNames)
	if len(missing) > 0 {
		return nil, &ToolNotFoundError{Names: missing}
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	w.log.Info().
		Str("query", summarizeQuery(query)).
		Int("max_iterations", maxIterations).
		Int("tools", len(resolved)).
		Msg("agent run start")

	start := time.Now()
	outcome, err := w.runner.Run(ctx, query, resolved, maxIterations)
	elapsed := time.Since(start)

	if err != nil {
		w.log.Error().Err(err).Dur("duration", elapsed).Msg("agent run failed")
		return nil, &ExecutionError{Err: err}
	}

	thinking := outcome.Thinking
	if strings.TrimSpace(thinking) == "" {
		// 外部agent没吐出轨迹时给占位文本，thinking只是尽力而为的元数据
		thinking = "Thinking process not captured"
	}

	w.log.Info().
		Int("iterations", outcome.Iterations).
		Dur("duration", elapsed).
		Msg("agent run completed")

	return &RunResult{
		Result:        outcome.Result,
		Thinking:      thinking,
		Iterations:    outcome.Iterations,
		ExecutionTime: elapsed.Seconds(),
	}, nil
}

func summarizeQuery(q string) string {
	const max = 80
	q = strings.ReplaceAll(q, "\n", " ")
	q = strings.TrimSpace(q)
	r := []rune(q)
	if len(r) <= max {
		return q
	}
	return string(r[:max-3]) + "..."
}
