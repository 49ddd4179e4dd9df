// Package history holds the bounded conversation log shared between the
// pipeline and the session layer.
//
// One user/assistant exchange is two turns. The log keeps at most
// MaxTurns exchanges; when the bound is exceeded the oldest turns are
// evicted first.
package history

// Role values for conversation turns
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one (role, content) pair in the conversation
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MaxTurns is the number of retained user/assistant exchanges
const MaxTurns = 10

// MaxEntries is the hard bound on the history length in turns
const MaxEntries = 2 * MaxTurns

// Append adds turns to the history and evicts the oldest entries so the
// result never exceeds MaxEntries. The input slice is not mutated.
func Append(h []Turn, turns ...Turn) []Turn {
	out := make([]Turn, 0, len(h)+len(turns))
	out = append(out, h...)
	out = append(out, turns...)
	return Truncate(out)
}

// Truncate drops the oldest turns until the history fits MaxEntries
func Truncate(h []Turn) []Turn {
	if len(h) <= MaxEntries {
		return h
	}
	return h[len(h)-MaxEntries:]
}
