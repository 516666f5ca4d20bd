// ABOUTME: Orchestrator drives the two-round tool-calling conversation
// ABOUTME: Round 1 offers retrieval, round 2 synthesizes from tool output
package core

import (
	"encoding/json"
	"log"

	"github.com/harper/courserag/internal/llm"
	"github.com/harper/courserag/internal/tools"
	openai "github.com/sashabaranov/go-openai"
)

// systemPrompt is the fixed persona and tool policy for every query
const systemPrompt = `You are an AI assistant specialized in course materials and educational content. You have a search tool for course content.

Tool usage:
- Use the search tool only for questions about specific course content or detailed educational materials
- At most one search per query
- If a search yields no results, say so clearly without offering alternatives

Responses are brief, concise and focused. Answer general knowledge questions directly without searching. Do not mention the search process in your answer.`

// ChatClient is the slice of the LLM client the orchestrator needs
type ChatClient interface {
	Chat(messages []openai.ChatCompletionMessage, toolDefs []openai.Tool, allowTools bool) (*llm.ChatResponse, error)
}

// Answer is the outcome of one orchestrated query
type Answer struct {
	Text      string   `json:"answer"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id"`
}

// Orchestrator answers user queries in at most two model rounds. The model
// decides in round 1 whether retrieval is needed; if it requests the tool,
// the orchestrator executes it and runs round 2 with tools disabled, so a
// query always terminates within exactly two provider calls.
type Orchestrator struct {
	client   ChatClient
	registry *tools.Registry
	sessions *SessionStore
}

// NewOrchestrator wires the model client, tool registry, and session store
func NewOrchestrator(client ChatClient, registry *tools.Registry, sessions *SessionStore) *Orchestrator {
	return &Orchestrator{
		client:   client,
		registry: registry,
		sessions: sessions,
	}
}

// Answer processes one user query. An empty sessionID starts a new session.
// Provider failures are returned as errors; tool failures become tool
// output the model explains to the user.
func (o *Orchestrator) Answer(query, sessionID string) (*Answer, error) {
	if sessionID == "" {
		sessionID = o.sessions.NewSession()
	}

	messages := o.buildMessages(sessionID, query)
	defs := o.registry.Definitions()

	resp, err := o.client.Chat(messages, defs, true)
	if err != nil {
		return nil, err
	}

	final := resp.Text
	var sources []string

	if resp.HasToolCalls() {
		// Protocol allows one retrieval per query: execute the first
		// request and drop the rest.
		if len(resp.ToolCalls) > 1 {
			log.Printf("[Orchestrator] Model requested %d tool calls, executing first only", len(resp.ToolCalls))
		}
		call := resp.ToolCalls[0]

		result := o.registry.Execute(call.Function.Name, json.RawMessage(call.Function.Arguments))
		sources = result.Sources

		assistant := resp.Message
		assistant.ToolCalls = []openai.ToolCall{call}

		messages = append(messages, assistant, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    result.Text,
			ToolCallID: call.ID,
		})

		resp, err = o.client.Chat(messages, defs, false)
		if err != nil {
			return nil, err
		}
		// Tool requests in the final round are ignored; the text stands.
		if resp.HasToolCalls() {
			log.Printf("[Orchestrator] Ignoring tool request in final round")
		}
		final = resp.Text
	}

	o.sessions.Append(sessionID, query, final)

	return &Answer{
		Text:      final,
		Sources:   sources,
		SessionID: sessionID,
	}, nil
}

// buildMessages assembles system prompt, prior history, and the new query
func (o *Orchestrator) buildMessages(sessionID, query string) []openai.ChatCompletionMessage {
	history := o.sessions.GetHistory(sessionID)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	return append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})
}
