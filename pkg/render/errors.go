package render

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// ErrorsFromResult maps a validation result into the per-field message map
// renderers consume through RenderOptions.Errors. Issues for structured
// payment sub-fields collapse onto their owning field, keyed by the top-level
// name, with the dotted path prefixed so the message stays addressable.
func ErrorsFromResult(result schema.Result) map[string][]string {
	if len(result.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range result.Issues {
		message := strings.TrimSpace(issue.Message)
		if message == "" {
			continue
		}
		if issue.Path != "" && issue.Path != issue.Field {
			message = issue.Path + ": " + message
		}
		out[issue.Field] = append(out[issue.Field], message)
	}
	for field, messages := range out {
		out[field] = normalizeMessages(messages)
	}
	return out
}

// MergeErrors combines server-side messages with locally generated ones,
// trimming whitespace and removing duplicates while preserving order.
func MergeErrors(existing map[string][]string, extras map[string][]string) map[string][]string {
	if len(existing) == 0 && len(extras) == 0 {
		return nil
	}
	out := make(map[string][]string, len(existing)+len(extras))
	for field, messages := range existing {
		out[field] = append(out[field], messages...)
	}
	for field, messages := range extras {
		out[field] = append(out[field], messages...)
	}
	for field, messages := range out {
		out[field] = normalizeMessages(messages)
		if len(out[field]) == 0 {
			delete(out, field)
		}
	}
	return out
}

func normalizeMessages(messages []string) []string {
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
