package schema

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Issue represents a validation failure with its field location. Path carries
// the dotted sub-field address for structured payment values.
type Issue struct {
	Field   string `json:"field"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result captures a validation run for editor previews and submissions.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// zeroDateRFC3339 is the serialized form of the unset-date sentinel.
var zeroDateRFC3339 = time.Time{}.Format(time.RFC3339)

var (
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	cardNumberPattern = regexp.MustCompile(`^\d{12,19}$`)
	digitsPattern     = regexp.MustCompile(`^\d*$`)
)

// Validate checks a submission value map against the schema. It is total and
// side-effect free: the same schema and values always produce the same
// issues, in rule (document) order.
func (s Schema) Validate(values map[string]any) Result {
	var issues []Issue
	for _, name := range s.order {
		issues = append(issues, s.rules[name].check(values[name])...)
	}
	return Result{Valid: len(issues) == 0, Issues: issues}
}

func (r Rule) check(value any) []Issue {
	switch r.Kind {
	case KindBoolean:
		return r.checkBool(value)
	case KindDate:
		return r.checkDate(value)
	case KindStringArray:
		return r.checkArray(value)
	case KindObject:
		return r.checkObject(value)
	default:
		return r.checkString(value)
	}
}

func (r Rule) issue(path, message string) Issue {
	return Issue{Field: r.Field, Path: path, Message: message}
}

func (r Rule) checkString(value any) []Issue {
	str, ok := asString(value)
	if !ok {
		if value == nil {
			str = ""
		} else {
			return []Issue{r.issue("", "expected a string value")}
		}
	}

	if str == "" {
		if r.Required {
			return []Issue{r.issue("", "required")}
		}
		return nil
	}

	var issues []Issue
	if r.ExactLength > 0 && len(str) != r.ExactLength {
		issues = append(issues, r.issue("", fmt.Sprintf("must be %d characters", r.ExactLength)))
	}
	if msg := checkFormat(r.Format, str); msg != "" {
		issues = append(issues, r.issue("", msg))
	}
	return issues
}

func (r Rule) checkBool(value any) []Issue {
	if value == nil {
		if r.Required {
			return []Issue{r.issue("", "required")}
		}
		return nil
	}
	if _, ok := value.(bool); !ok {
		return []Issue{r.issue("", "expected a boolean value")}
	}
	return nil
}

func (r Rule) checkDate(value any) []Issue {
	switch typed := value.(type) {
	case nil:
		if r.Required {
			return []Issue{r.issue("", "required")}
		}
		return nil
	case time.Time:
		if typed.IsZero() && r.Required {
			return []Issue{r.issue("", "required")}
		}
		return nil
	case string:
		if typed == "" || typed == zeroDateRFC3339 {
			if r.Required {
				return []Issue{r.issue("", "required")}
			}
			return nil
		}
		if _, err := time.Parse(time.RFC3339, typed); err != nil {
			return []Issue{r.issue("", "expected an RFC 3339 date")}
		}
		return nil
	default:
		return []Issue{r.issue("", "expected a date value")}
	}
}

func (r Rule) checkArray(value any) []Issue {
	var length int
	switch typed := value.(type) {
	case nil:
		length = 0
	case []string:
		length = len(typed)
	case []any:
		for _, item := range typed {
			if _, ok := asString(item); !ok {
				return []Issue{r.issue("", "expected an array of strings")}
			}
		}
		length = len(typed)
	default:
		return []Issue{r.issue("", "expected an array value")}
	}

	if length == 0 && r.Required {
		return []Issue{r.issue("", "select at least one option")}
	}
	return nil
}

func (r Rule) checkObject(value any) []Issue {
	obj, ok := value.(map[string]any)
	if !ok {
		if value == nil {
			obj = map[string]any{}
		} else {
			return []Issue{r.issue("", "expected an object value")}
		}
	}

	if len(obj) == 0 && !r.Required {
		return nil
	}
	if r.Object == nil {
		return nil
	}
	return r.checkObjectRule(r.Object, obj, "")
}

func (r Rule) checkObjectRule(rule *ObjectRule, obj map[string]any, prefix string) []Issue {
	var issues []Issue

	if rule.Discriminator != "" {
		mode, _ := asString(obj[rule.Discriminator])
		if mode == "" {
			if r.Required {
				issues = append(issues, r.issue(joinPath(prefix, rule.Discriminator), "required"))
			}
			return issues
		}
		active, known := rule.Modes[mode]
		if !known {
			issues = append(issues, r.issue(joinPath(prefix, rule.Discriminator), fmt.Sprintf("unknown payment method %q", mode)))
			return issues
		}
		// Inactive modes may retain typed sub-state; only the active mode's
		// object is part of the committed value.
		nested, _ := obj[mode].(map[string]any)
		if nested == nil {
			nested = map[string]any{}
		}
		issues = append(issues, r.checkObjectRule(active, nested, joinPath(prefix, mode))...)
		return issues
	}

	for _, sub := range rule.Fields {
		path := joinPath(prefix, sub.Name)
		str, ok := asString(obj[sub.Name])
		if !ok && obj[sub.Name] != nil {
			issues = append(issues, r.issue(path, "expected a string value"))
			continue
		}
		if str == "" {
			if sub.Required && r.Required {
				issues = append(issues, r.issue(path, "required"))
			}
			continue
		}
		if msg := checkFormat(sub.Pattern, str); msg != "" {
			issues = append(issues, r.issue(path, msg))
		}
	}
	return issues
}

func checkFormat(format, value string) string {
	switch format {
	case FormatEmail:
		if !emailPattern.MatchString(value) {
			return "must be a valid email address"
		}
	case FormatCVV:
		if !cvvPattern.MatchString(value) {
			return "must be a 3 or 4 digit code"
		}
	case FormatCardNumber:
		if !cardNumberPattern.MatchString(strings.ReplaceAll(value, " ", "")) {
			return "must be a valid card number"
		}
	case FormatDigits:
		if !digitsPattern.MatchString(value) {
			return "must contain digits only"
		}
	}
	return ""
}

func asString(value any) (string, bool) {
	str, ok := value.(string)
	return str, ok
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
