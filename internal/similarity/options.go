package similarity

import (
	"sort"
	"strings"
)

// optionFields is the priority order of document fields that may carry the
// option list of a question document.
var optionFields = []string{"options", "choices", "answerOptions", "answers", "answersList", "optionsText"}

// objectTextFields is the fallback chain for option objects.
var objectTextFields = []string{"text", "label", "value"}

// ExtractOptions pulls a flat, ordered slice of option texts out of a raw
// question document. The first present, non-nil field from optionFields is
// used. The value may be a sequence of strings or objects, or a key-value
// mapping of the same; entries are coerced to text, trimmed, and empties are
// dropped. Unrecognized shapes yield an empty result, never an error.
func ExtractOptions(doc map[string]any) []string {
	for _, f := range optionFields {
		if v, ok := doc[f]; ok && v != nil {
			return CoerceOptions(v)
		}
	}
	return nil
}

// CoerceOptions flattens one raw options value into option texts.
func CoerceOptions(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return appendTexts(nil, stringsToAny(v))
	case []any:
		return appendTexts(nil, v)
	case map[string]any:
		// JSON decoding loses the document's key order; sorted keys keep the
		// result stable across runs.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vals := make([]any, 0, len(keys))
		for _, k := range keys {
			vals = append(vals, v[k])
		}
		return appendTexts(nil, vals)
	default:
		return nil
	}
}

func appendTexts(out []string, vals []any) []string {
	for _, e := range vals {
		if s := strings.TrimSpace(optionText(e)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func optionText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, f := range objectTextFields {
			if s, ok := t[f].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
