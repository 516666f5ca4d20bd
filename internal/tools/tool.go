// ABOUTME: Tool capability interface consumed by the orchestrator and registry
// ABOUTME: Tools describe themselves with an OpenAI function schema
package tools

import (
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// Result is the per-call outcome of a tool execution: the text handed back
// to the model, plus provenance labels for display. Sources travel with the
// result value rather than through shared state, so concurrent queries
// cannot read each other's provenance.
type Result struct {
	Text    string
	Sources []string
}

// Tool is a named capability the model may invoke. Definition returns the
// machine-readable schema offered to the model; Execute runs the tool with
// the model-supplied JSON arguments.
type Tool interface {
	Definition() openai.Tool
	Execute(args json.RawMessage) (*Result, error)
}
