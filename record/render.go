package record

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	placeholder = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)
	entities    = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

// Render fills {field} placeholders in template. An empty template renders
// every value, comma separated. Output is HTML-escaped.
func (b *Base) Render(template string) string {
	if template == "" {
		return implode(", ", b.fields.Values())
	}
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		return b.RenderField(m[1 : len(m)-1])
	})
}

// RenderField renders one field, flattening arrays and nested objects.
func (b *Base) RenderField(field string) string {
	switch v := b.Get(field).(type) {
	case []any:
		return implode(", ", v)
	case *Fields:
		return implode(", ", v.Values())
	default:
		return entities.Replace(formatValue(v))
	}
}

func implode(glue string, values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		switch vv := v.(type) {
		case []any:
			parts = append(parts, implode(glue, vv))
		case *Fields:
			parts = append(parts, implode(glue, vv.Values()))
		default:
			parts = append(parts, entities.Replace(formatValue(vv)))
		}
	}
	return strings.Join(parts, glue)
}

func formatValue(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case int64:
		return strconv.FormatInt(vv, 10)
	case int:
		return strconv.Itoa(vv)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case bool:
		if vv {
			return "1"
		}
		return ""
	case time.Time:
		if vv.IsZero() {
			return ""
		}
		return vv.Format(DateLayout)
	case *time.Time:
		if vv == nil {
			return ""
		}
		return formatValue(*vv)
	case []any:
		return joinRaw(vv)
	case *Fields:
		return joinRaw(vv.Values())
	case interface{ String() string }:
		return vv.String()
	}
	return ""
}

func joinRaw(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, formatValue(v))
	}
	return strings.Join(parts, ",")
}
