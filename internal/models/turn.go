// ABOUTME: Turn represents a single message in a chat session
// ABOUTME: Core data structure for bounded conversation history
package models

import (
	"errors"
	"strings"
)

// Message roles for session history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one (role, text) entry of session history
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewTurn creates a Turn with validation
func NewTurn(role, content string) (*Turn, error) {
	if role != RoleUser && role != RoleAssistant {
		return nil, errors.New("role must be user or assistant")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("turn content cannot be empty")
	}
	return &Turn{Role: role, Content: content}, nil
}
