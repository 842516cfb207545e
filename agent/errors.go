package agent

import (
	"fmt"
	"strings"
)

// InvalidArgumentError 语义非法的输入，例如max_iterations不为正数
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// ToolNotFoundError 请求点名了目录里不存在的工具，Names包含全部失配的名字
type ToolNotFoundError struct {
	Names []string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("unknown tools: %s", strings.Join(e.Names, ", "))
}

// ExecutionError 外部agent调用失败。原始错误保留在Err里，
// 但不允许provider的裸异常直接穿过这一层。
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
