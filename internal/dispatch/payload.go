package dispatch

import (
	"encoding/json"

	"intentguard/internal/pipeline"
)

// blockPayload is the error object returned to the agent, per spec §6.
type blockPayload struct {
	Type  string             `json:"type"`
	Error string             `json:"error"`
	Code  pipeline.BlockCode `json:"code"`
}

func errorPayload(reason string, code pipeline.BlockCode) string {
	p := blockPayload{Type: "error", Error: reason, Code: code}
	b, err := json.Marshal(p)
	if err != nil {
		return reason
	}
	return string(b)
}

// toolResultPayload wraps a successful tool result (real or injected)
// in a small typed envelope. The spec leaves this implementation
// defined; mirroring the error payload's shape keeps the two cases
// structurally consistent for a host parsing dispatch() output.
type toolResult struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func toolResultPayload(content string) string {
	p := toolResult{Type: "tool_result", Content: content}
	b, err := json.Marshal(p)
	if err != nil {
		return content
	}
	return string(b)
}

// toolErrorPayload wraps a failure returned by the host's ToolDispatcher
// (as opposed to a pre-hook block). Distinguishing the two lets a host
// tell "the mediation layer stopped this call" from "the real tool ran
// and failed" without guessing from an empty Content string.
type toolError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func toolErrorPayload(reason string) string {
	p := toolError{Type: "tool_error", Error: reason}
	b, err := json.Marshal(p)
	if err != nil {
		return reason
	}
	return string(b)
}
