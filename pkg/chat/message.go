package chat

import "orlab/pkg/ai"

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable transcript entry.
type Message struct {
	Role    Role
	Content string
}

func toProviderMessages(msgs []Message) []ai.Message {
	out := make([]ai.Message, len(msgs))
	for i, m := range msgs {
		out[i] = ai.Message{Role: string(m.Role), Content: m.Content}
	}
	return out
}
