package model

// Answer is a captured piece of user-supplied configuration, collected once
// during preflight before any mutating step runs. Immutable afterward and
// scoped to the process run; persistence, if any, belongs to the external
// tool's own config store.
type Answer struct {
	Key   string
	Value string

	// WasPrompted distinguishes "already configured, detected" from
	// "freshly collected from the operator".
	WasPrompted bool
}

// Answers indexes collected answers by key.
type Answers map[string]Answer

// Value returns the answer value for key, or empty when absent.
func (a Answers) Value(key string) string {
	if a == nil {
		return ""
	}
	return a[key].Value
}
