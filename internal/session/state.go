package session

// Well-known state keys. Handlers and instruction templates go through
// the typed accessors below instead of spelling the keys inline.
const (
	KeyReminders = "reminders"
	KeyUserName  = "user_name"
)

// Reminders returns the reminder list stored in state, defaulting to an
// empty list when the key is absent. Values loaded from a JSON-backed
// store decode as []any, so both representations are accepted.
func Reminders(s State) []string {
	switch v := s.Get(KeyReminders, nil).(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return []string{}
	}
}

// SetReminders overwrites the reminder list in state.
func SetReminders(s State, reminders []string) {
	s.Set(KeyReminders, reminders)
}

// UserName returns the stored user name, defaulting to the empty string.
func UserName(s State) string {
	if name, ok := s.Get(KeyUserName, "").(string); ok {
		return name
	}
	return ""
}

// SetUserName overwrites the user name in state.
func SetUserName(s State, name string) {
	s.Set(KeyUserName, name)
}
