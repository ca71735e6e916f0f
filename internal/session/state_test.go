package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateGetSet(t *testing.T) {
	t.Parallel()

	s := State{}
	assert.Equal(t, "fallback", s.Get("missing", "fallback"))

	s.Set("user_name", "John")
	assert.Equal(t, "John", s.Get("user_name", ""))

	s.Set("user_name", "Jane")
	assert.Equal(t, "Jane", s.Get("user_name", ""))
}

func TestStateGetNilMap(t *testing.T) {
	t.Parallel()

	var s State
	assert.Equal(t, 42, s.Get("anything", 42))
}

func TestStateClone(t *testing.T) {
	t.Parallel()

	s := State{
		"user_name": "John",
		"reminders": []string{"buy milk"},
	}
	clone := s.Clone()

	clone.Set("user_name", "Jane")
	SetReminders(clone, append(Reminders(clone), "walk dog"))

	assert.Equal(t, "John", s.Get("user_name", ""))
	assert.Equal(t, []string{"buy milk"}, Reminders(s))
	assert.Equal(t, "Jane", clone.Get("user_name", ""))
	assert.Equal(t, []string{"buy milk", "walk dog"}, Reminders(clone))
}

func TestRemindersDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	s := State{}
	got := Reminders(s)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRemindersAcceptsJSONDecodedList(t *testing.T) {
	t.Parallel()

	// A JSON-backed store round-trips []string as []any.
	s := State{KeyReminders: []any{"a", "b"}}
	assert.Equal(t, []string{"a", "b"}, Reminders(s))
}

func TestUserNameDefaultsToEmpty(t *testing.T) {
	t.Parallel()

	s := State{}
	assert.Equal(t, "", UserName(s))

	SetUserName(s, "John")
	assert.Equal(t, "John", UserName(s))
}
