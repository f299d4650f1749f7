package scoring

import (
	"encoding/json"
	"strings"
)

// Feedback is the evaluation stored with an answer. It is a free-shape object
// because the model's output is used as-is when it decodes: missing keys stay
// absent rather than being filled with zero values.
type Feedback map[string]any

// Outcome tags which tier of the extraction policy produced a Feedback.
type Outcome int

const (
	// OutcomeStructured means a JSON object was found and decoded.
	OutcomeStructured Outcome = iota
	// OutcomeRaw means no usable JSON was found; the verbatim text is kept
	// under the "raw" key for manual inspection.
	OutcomeRaw
	// OutcomeDegraded means the upstream call failed or returned nothing.
	OutcomeDegraded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStructured:
		return "structured"
	case OutcomeRaw:
		return "raw"
	case OutcomeDegraded:
		return "degraded"
	}
	return "unknown"
}

// Degraded is the placeholder feedback stored when the scoring service is
// unreachable or returns an empty response.
func Degraded() Feedback {
	return Feedback{"mistakes": "No data returned", "score": 0}
}

// Extract applies the best-effort extraction policy to raw model output:
// decode the first-{ to last-} substring as a JSON object, or fall back to
// preserving the whole text. Empty input degrades. It never fails; the model
// is not trusted to produce valid structured output and a malformed response
// must not fail a submission.
func Extract(raw string) (Feedback, Outcome) {
	if strings.TrimSpace(raw) == "" {
		return Degraded(), OutcomeDegraded
	}

	if j := extractJSON(raw); j != "" {
		var fb Feedback
		if err := json.Unmarshal([]byte(j), &fb); err == nil {
			return fb, OutcomeStructured
		}
	}

	return Feedback{"raw": raw}, OutcomeRaw
}

// extractJSON returns the substring from the first '{' to the last '}' in the
// input. This is a pragmatic approach to handle model outputs that wrap JSON
// in text or markdown.
func extractJSON(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
