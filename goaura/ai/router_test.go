package ai

import (
	"strings"
	"testing"
)

func TestPickModel(t *testing.T) {
	const (
		cheap  = "deepseek-chat"
		strong = "deepseek-reasoner"
	)

	manyMessages := make([]Message, routeMaxMessages+1)
	for i := range manyMessages {
		manyMessages[i] = Message{Role: "user", Content: "hi"}
	}

	tests := []struct {
		name      string
		messages  []Message
		requested string
		want      string
	}{
		{
			name:      "ExplicitModelWins",
			messages:  manyMessages,
			requested: "custom-model",
			want:      "custom-model",
		},
		{
			name:     "ShortChatGoesCheap",
			messages: []Message{{Role: "user", Content: "what is the weather like"}},
			want:     cheap,
		},
		{
			name:     "LongConversationGoesStrong",
			messages: manyMessages,
			want:     strong,
		},
		{
			name:     "LongMessageGoesStrong",
			messages: []Message{{Role: "user", Content: strings.Repeat("a", routeMaxMessageLen+1)}},
			want:     strong,
		},
		{
			name:     "CodeFenceGoesStrong",
			messages: []Message{{Role: "user", Content: "fix this\n```go\nfunc main() {}\n```"}},
			want:     strong,
		},
		{
			name:     "ReasoningHintGoesStrong",
			messages: []Message{{Role: "user", Content: "Explain Step By Step how this works"}},
			want:     strong,
		},
		{
			name:     "ConstraintHintGoesStrong",
			messages: []Message{{Role: "user", Content: "the output MUST NOT contain commas"}},
			want:     strong,
		},
		{
			name: "Empty",
			want: cheap,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickModel(tt.messages, tt.requested, cheap, strong); got != tt.want {
				t.Errorf("PickModel() = %q, want %q", got, tt.want)
			}
		})
	}
}
