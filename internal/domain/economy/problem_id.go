package economy

import "fmt"

// BuildProblemID derives the deterministic id for a detected problem, keyed
// on (kind, subject, resource). Detection passes regenerate the whole desired
// set and diff it against stored records, so the id must be stable across
// runs.
func BuildProblemID(kind, subject, resource string) string {
	return fmt.Sprintf("problem_%s_%s_%s", idToken(kind), idToken(subject), idToken(resource))
}
