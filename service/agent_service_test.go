package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-server/agent"
	"agent-server/config"
	"agent-server/request"
	"agent-server/tools"
)

type fakeRunner struct {
	outcome *agent.Outcome
	err     error
	gotMax  int
}

func (f *fakeRunner) Run(ctx context.Context, query string, agentTools []tool.BaseTool, maxIterations int) (*agent.Outcome, error) {
	f.gotMax = maxIterations
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func newTestService(t *testing.T, runner agent.Runner) (*AgentService, *tools.Catalog) {
	t.Helper()
	catalog, err := tools.NewCatalog("")
	require.NoError(t, err)

	cfg := &config.Config{Agent: config.AgentConfig{MaxIterations: 10}}
	wrapper := agent.NewWrapper(catalog, runner, 0, zerolog.Nop())
	return NewAgentService(cfg, wrapper, catalog, zerolog.Nop()), catalog
}

func TestHandleQuerySuccess(t *testing.T) {
	runner := &fakeRunner{outcome: &agent.Outcome{Result: "Paris", Thinking: "Thought: trivial", Iterations: 2}}
	svc, _ := newTestService(t, runner)

	five := 5
	resp, apiErr := svc.HandleQuery(context.Background(), request.QueryRequest{
		Query:         "What is the capital of France?",
		MaxIterations: &five,
	})

	require.Nil(t, apiErr)
	assert.Equal(t, "Paris", resp.Result)
	assert.Equal(t, 2, resp.Iterations)
	assert.GreaterOrEqual(t, resp.ExecutionTime, 0.0)
	assert.Equal(t, 5, runner.gotMax)
}

func TestHandleQueryDefaultIterations(t *testing.T) {
	runner := &fakeRunner{outcome: &agent.Outcome{Result: "ok", Iterations: 1}}
	svc, _ := newTestService(t, runner)

	_, apiErr := svc.HandleQuery(context.Background(), request.QueryRequest{Query: "hi"})
	require.Nil(t, apiErr)
	assert.Equal(t, 10, runner.gotMax)
}

func TestHandleQueryInvalidIterations(t *testing.T) {
	runner := &fakeRunner{}
	svc, _ := newTestService(t, runner)

	zero := 0
	_, apiErr := svc.HandleQuery(context.Background(), request.QueryRequest{Query: "hi", MaxIterations: &zero})

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, CodeInvalidArgument, apiErr.Code)
}

func TestHandleQueryUnknownTools(t *testing.T) {
	runner := &fakeRunner{}
	svc, _ := newTestService(t, runner)

	_, apiErr := svc.HandleQuery(context.Background(), request.QueryRequest{
		Query: "hi",
		Tools: []string{"missing_one", "missing_two"},
	})

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, CodeToolNotFound, apiErr.Code)
	assert.Contains(t, apiErr.Message, "missing_one")
	assert.Contains(t, apiErr.Message, "missing_two")
}

func TestHandleQueryExecutionError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("model unavailable")}
	svc, _ := newTestService(t, runner)

	_, apiErr := svc.HandleQuery(context.Background(), request.QueryRequest{Query: "hi"})

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, CodeAgentExecutionError, apiErr.Code)
	assert.Contains(t, apiErr.Message, "model unavailable")
}

func TestHandleQueryTimeout(t *testing.T) {
	runner := &fakeRunner{err: context.DeadlineExceeded}
	svc, _ := newTestService(t, runner)

	_, apiErr := svc.HandleQuery(context.Background(), request.QueryRequest{Query: "hi"})

	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusGatewayTimeout, apiErr.Status)
	assert.Equal(t, CodeTimeout, apiErr.Code)
}

func TestListTools(t *testing.T) {
	svc, catalog := newTestService(t, &fakeRunner{})

	listed := svc.ListTools()
	assert.Equal(t, catalog.Descriptors(), listed)
	assert.Equal(t, listed, svc.ListTools(), "repeated calls return the same ordered list")
}
