package audit

import "regexp"

type piiPattern struct {
	placeholder string
	re          *regexp.Regexp
}

// Known PII shapes, replaced in the order listed. Placeholders never match
// any pattern, so masking is idempotent on its own output.
var piiPatterns = []piiPattern{
	{"[MASKED_EMAIL]", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"[MASKED_PHONE]", regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{"[MASKED_SSN]", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"[MASKED_CREDIT_CARD]", regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
}

// Mask walks a JSON-shaped value (mappings, sequences, scalars) and replaces
// PII-shaped substrings in every string scalar with a category placeholder.
// Structure and key sets are preserved; non-string scalars pass through.
// It is total: no input shape can make it fail.
func Mask(value any) any {
	switch v := value.(type) {
	case string:
		return maskString(v)
	case map[string]any:
		masked := make(map[string]any, len(v))
		for key, item := range v {
			masked[key] = Mask(item)
		}
		return masked
	case []any:
		masked := make([]any, len(v))
		for i, item := range v {
			masked[i] = Mask(item)
		}
		return masked
	default:
		return value
	}
}

func maskString(s string) string {
	for _, p := range piiPatterns {
		s = p.re.ReplaceAllString(s, p.placeholder)
	}
	return s
}
