package agent

import (
	"testing"

	"github.com/remora-ai/remora/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestRenderInstruction(t *testing.T) {
	t.Parallel()

	state := session.State{}
	session.SetUserName(state, "Alice")
	session.SetReminders(state, []string{"buy milk", "call mom"})

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "string value",
			template: "Hello {user_name}.",
			want:     "Hello Alice.",
		},
		{
			name:     "list value rendered as JSON",
			template: "Reminders: {reminders}",
			want:     `Reminders: ["buy milk","call mom"]`,
		},
		{
			name:     "unknown placeholder left intact",
			template: "Preferences: {user_preferences}",
			want:     "Preferences: {user_preferences}",
		},
		{
			name:     "no placeholders",
			template: "Plain instruction.",
			want:     "Plain instruction.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RenderInstruction(tt.template, state))
		})
	}
}

func TestRenderInstruction_EmptyState(t *testing.T) {
	t.Parallel()

	got := RenderInstruction("Hi {user_name}", session.State{})
	assert.Equal(t, "Hi {user_name}", got)
}
