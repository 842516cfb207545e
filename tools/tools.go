package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/dop251/goja"
)

const (
	javascriptREPLDesc = "A JavaScript REPL. Use this to execute short JavaScript programs. Input should be a valid script. The output is the value of the last expression plus anything printed with console.log."
	hackerNewsDesc     = "Get insight from Hacker News users on specific search terms. Input should be a search term (e.g. How to get rich?). The output will be recent high-scoring stories related to it with a user comment."
	googleSearchDesc   = "Get specific information from a search query. Input should be a question like 'How to add numbers in Clojure?'. Result will be the answer to the question."

	defaultHackerNewsEndpoint = "https://hn.algolia.com/api/v1/search_by_date"
	defaultSerpAPIEndpoint    = "https://serpapi.com/search"

	replTimeLimit  = 5 * time.Second
	toolHTTPTimout = 30 * time.Second
)

// ---- javascript_repl ----

type replInput struct {
	Code string `json:"code" jsonschema:"description=要执行的JavaScript代码"`
}

type replOutput struct {
	Output string `json:"output"`
}

func newJavaScriptREPLTool() (tool.InvokableTool, error) {
	return utils.InferTool(toolJavaScriptREPL, javascriptREPLDesc, runJavaScript)
}

// runJavaScript 在一次性goja虚拟机里执行脚本。脚本抛出的异常和超时
// 作为输出文本返回而不是error，让agent自己读到失败原因再决定下一步。
func runJavaScript(ctx context.Context, input *replInput) (*replOutput, error) {
	vm := goja.New()

	var printed []string
	console := vm.NewObject()
	if err := console.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		printed = append(printed, strings.Join(parts, " "))
		return goja.Undefined()
	}); err != nil {
		return nil, fmt.Errorf("bind console.log: %w", err)
	}
	if err := vm.Set("console", console); err != nil {
		return nil, fmt.Errorf("bind console: %w", err)
	}

	timer := time.AfterFunc(replTimeLimit, func() {
		vm.Interrupt("script execution time limit exceeded")
	})
	defer timer.Stop()

	value, err := vm.RunString(input.Code)
	if err != nil {
		return &replOutput{Output: err.Error()}, nil
	}

	lines := printed
	if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
		lines = append(lines, value.String())
	}
	return &replOutput{Output: strings.Join(lines, "\n")}, nil
}

// ---- hacker_news ----

type hackerNewsInput struct {
	Query string `json:"query" jsonschema:"description=要搜索的关键词"`
}

type hackerNewsOutput struct {
	Stories string `json:"stories"`
}

type hackerNewsClient struct {
	endpoint string
	client   *http.Client
}

type algoliaHit struct {
	Title       string `json:"title"`
	ObjectID    string `json:"objectID"`
	CommentText string `json:"comment_text"`
}

type algoliaResponse struct {
	Hits []algoliaHit `json:"hits"`
}

func newHackerNewsTool(endpoint string) (tool.InvokableTool, error) {
	c := &hackerNewsClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: toolHTTPTimout},
	}
	return utils.InferTool(toolHackerNews, hackerNewsDesc, c.search)
}

// search 调用Algolia接口取最新高分story，每条再取一条用户评论
func (c *hackerNewsClient) search(ctx context.Context, input *hackerNewsInput) (*hackerNewsOutput, error) {
	params := url.Values{}
	params.Set("query", input.Query)
	params.Set("tags", "story")
	params.Set("numericFilters", "points>100")

	var result algoliaResponse
	if err := c.getJSON(ctx, c.endpoint+"?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("search hacker news: %w", err)
	}

	hits := result.Hits
	if len(hits) > 5 {
		hits = hits[:5]
	}

	var sb strings.Builder
	for _, hit := range hits {
		fmt.Fprintf(&sb, "Title: %s\n", hit.Title)
		comment, err := c.firstComment(ctx, hit.ObjectID)
		if err != nil || comment == "" {
			continue
		}
		fmt.Fprintf(&sb, "\tComment: %s\n", comment)
	}
	return &hackerNewsOutput{Stories: sb.String()}, nil
}

func (c *hackerNewsClient) firstComment(ctx context.Context, objectID string) (string, error) {
	params := url.Values{}
	params.Set("tags", fmt.Sprintf("comment,story_%s", objectID))
	params.Set("hitsPerPage", "1")

	var result algoliaResponse
	if err := c.getJSON(ctx, c.endpoint+"?"+params.Encode(), &result); err != nil {
		return "", err
	}
	if len(result.Hits) == 0 {
		return "", nil
	}
	return result.Hits[0].CommentText, nil
}

func (c *hackerNewsClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// ---- google_search ----

type googleSearchInput struct {
	Query string `json:"query" jsonschema:"description=要搜索的问题"`
}

type googleSearchOutput struct {
	Answer string `json:"answer"`
}

type serpAPIClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func newGoogleSearchTool(apiKey, endpoint string) (tool.InvokableTool, error) {
	c := &serpAPIClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: toolHTTPTimout},
	}
	return utils.InferTool(toolGoogleSearch, googleSearchDesc, c.search)
}

func (c *serpAPIClient) search(ctx context.Context, input *googleSearchInput) (*googleSearchOutput, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("google_domain", "google.com")
	params.Set("gl", "us")
	params.Set("hl", "en")
	params.Set("q", input.Query)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	answer, err := processSerpResponse(payload)
	if err != nil {
		return nil, err
	}
	return &googleSearchOutput{Answer: answer}, nil
}

// processSerpResponse 按answer_box、知识图谱、自然结果的优先级挑出最佳答案
func processSerpResponse(res map[string]interface{}) (string, error) {
	if errMsg, ok := stringAt(res, "error"); ok {
		return "", fmt.Errorf("got error from SerpAPI: %s", errMsg)
	}
	if v, ok := stringAt(res, "answer_box", "answer"); ok {
		return v, nil
	}
	if v, ok := stringAt(res, "answer_box", "snippet"); ok {
		return v, nil
	}
	if box, ok := res["answer_box"].(map[string]interface{}); ok {
		if words, ok := box["snippet_highlighted_words"].([]interface{}); ok && len(words) > 0 {
			if w, ok := words[0].(string); ok {
				return w, nil
			}
		}
	}
	if v, ok := stringAt(res, "sports_results", "game_spotlight"); ok {
		return v, nil
	}
	if v, ok := stringAt(res, "knowledge_graph", "description"); ok {
		return v, nil
	}
	if results, ok := res["organic_results"].([]interface{}); ok && len(results) > 0 {
		if first, ok := results[0].(map[string]interface{}); ok {
			if v, ok := first["snippet"].(string); ok && v != "" {
				return v, nil
			}
		}
	}
	return "No good search result found", nil
}

func stringAt(res map[string]interface{}, path ...string) (string, bool) {
	current := res
	for i, key := range path {
		if i == len(path)-1 {
			v, ok := current[key].(string)
			return v, ok && v != ""
		}
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return "", false
		}
		current = next
	}
	return "", false
}
