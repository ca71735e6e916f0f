package agent

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/remora-ai/remora/internal/session"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RenderInstruction resolves {key} placeholders in an instruction
// template against session state. String values are inserted verbatim;
// everything else is inserted as JSON. Placeholders with no matching
// state entry are left untouched so a missing key is visible in the
// prompt rather than silently blanked.
func RenderInstruction(template string, state session.State) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		value, ok := state[key]
		if !ok {
			return match
		}
		return renderValue(value)
	})
}

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
