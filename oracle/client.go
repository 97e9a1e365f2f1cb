// Package oracle is the boundary to the external text-understanding service
// that translates free-text enrollment rules into candidate requirement
// trees. The core treats it as a black box: given course text it returns
// either a structurally valid record or a failure with a reason.
package oracle

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a chat-completion endpoint.
type Client interface {
	Chat(ctx context.Context, messages []Message, options *SamplingOptions) (*Response, error)
}

type SamplingOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	Seed        int64   `json:"seed"`
}

type Response struct {
	Content string `json:"content"`
}
