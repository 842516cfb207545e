package tools

import (
	"fmt"

	"github.com/cloudwego/eino/components/tool"

	"agent-server/models"
)

const (
	toolJavaScriptREPL = "javascript_repl"
	toolHackerNews     = "hacker_news"
	toolGoogleSearch   = "google_search"
)

// Catalog 静态工具目录，进程启动时注册一次，之后只读。
// 保留注册顺序，按名字解析，未知名字一律拒绝。
type Catalog struct {
	order   []string
	byName  map[string]tool.InvokableTool
	entries map[string]models.ToolDescriptor
}

// NewCatalog 注册全部可用工具。serpAPIKey为空时不注册google_search。
func NewCatalog(serpAPIKey string) (*Catalog, error) {
	c := &Catalog{
		byName:  make(map[string]tool.InvokableTool),
		entries: make(map[string]models.ToolDescriptor),
	}

	repl, err := newJavaScriptREPLTool()
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", toolJavaScriptREPL, err)
	}
	c.register(toolJavaScriptREPL, javascriptREPLDesc, repl)

	hn, err := newHackerNewsTool(defaultHackerNewsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", toolHackerNews, err)
	}
	c.register(toolHackerNews, hackerNewsDesc, hn)

	if serpAPIKey != "" {
		search, err := newGoogleSearchTool(serpAPIKey, defaultSerpAPIEndpoint)
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", toolGoogleSearch, err)
		}
		c.register(toolGoogleSearch, googleSearchDesc, search)
	}

	return c, nil
}

func (c *Catalog) register(name, description string, t tool.InvokableTool) {
	c.order = append(c.order, name)
	c.byName[name] = t
	c.entries[name] = models.ToolDescriptor{Name: name, Description: description}
}

// Descriptors 按注册顺序返回工具目录
func (c *Catalog) Descriptors() []models.ToolDescriptor {
	out := make([]models.ToolDescriptor, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.entries[name])
	}
	return out
}

// Names 按注册顺序返回全部工具名
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Resolve 把工具名列表解析为可执行工具。未知名字全部收集进missing，
// 不在第一个失配处停下。
func (c *Catalog) Resolve(names []string) (resolved []tool.BaseTool, missing []string) {
	for _, name := range names {
		t, ok := c.byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		resolved = append(resolved, t)
	}
	return resolved, missing
}
