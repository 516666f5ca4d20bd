// ABOUTME: Registry dispatches model tool-invocation requests by name
// ABOUTME: Converts tool failures into tool-output text, never panics upward
package tools

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	openai "github.com/sashabaranov/go-openai"
)

// Registry holds named tools and dispatches invocations to them.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool

	executions atomic.Int64
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its schema name, replacing any previous
// registration with the same name
func (r *Registry) Register(tool Tool) {
	name := tool.Definition().Function.Name
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = tool
}

// Definitions returns the schemas of all registered tools in name order
func (r *Registry) Definitions() []openai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]openai.Tool, 0, len(names))
	for _, name := range names {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Execute dispatches one tool invocation. Unknown tool names and execution
// failures come back as result text so the conversation can continue; the
// model is told what went wrong instead of the query crashing.
func (r *Registry) Execute(name string, args json.RawMessage) *Result {
	r.executions.Add(1)

	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return &Result{Text: fmt.Sprintf("Tool '%s' not found", name)}
	}

	result, err := tool.Execute(args)
	if err != nil {
		log.Printf("[Registry] Tool %s failed: %v", name, err)
		return &Result{Text: fmt.Sprintf("Tool '%s' failed: %v", name, err)}
	}
	return result
}

// ExecutionCount returns the number of Execute calls made so far
func (r *Registry) ExecutionCount() int64 {
	return r.executions.Load()
}
