package paginator

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	placeholderRows    = "rows_text"
	placeholderPage    = "page_number"
	placeholderPages   = "pages_count"
	templateOpenBrace  = '{'
	templateCloseBrace = '}'
)

// segment is either a literal chunk or a named placeholder.
type segment struct {
	literal string
	name    string
}

// template is a pre-parsed "{name}" format string. Doubled braces escape.
type template struct {
	raw      string
	segments []segment
}

func parseTemplate(raw string, allowed ...string) (template, error) {
	known := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		known[a] = struct{}{}
	}

	var (
		segs []segment
		lit  strings.Builder
	)
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch ch {
		case templateOpenBrace:
			if i+1 < len(raw) && raw[i+1] == templateOpenBrace {
				lit.WriteByte(templateOpenBrace)
				i++
				continue
			}
			end := strings.IndexByte(raw[i+1:], templateCloseBrace)
			if end < 0 {
				return template{}, fmt.Errorf("%w: unclosed '{' at offset %d in %q", ErrInvalidTemplate, i, raw)
			}
			name := raw[i+1 : i+1+end]
			if _, ok := known[name]; !ok {
				return template{}, fmt.Errorf("%w: unknown placeholder {%s} in %q", ErrInvalidTemplate, name, raw)
			}
			if lit.Len() > 0 {
				segs = append(segs, segment{literal: lit.String()})
				lit.Reset()
			}
			segs = append(segs, segment{name: name})
			i += end + 1
		case templateCloseBrace:
			if i+1 < len(raw) && raw[i+1] == templateCloseBrace {
				lit.WriteByte(templateCloseBrace)
				i++
				continue
			}
			return template{}, fmt.Errorf("%w: single '}' at offset %d in %q", ErrInvalidTemplate, i, raw)
		default:
			lit.WriteByte(ch)
		}
	}
	if lit.Len() > 0 {
		segs = append(segs, segment{literal: lit.String()})
	}
	return template{raw: raw, segments: segs}, nil
}

// execute substitutes values; every placeholder was validated at parse time.
func (t template) execute(values map[string]string) string {
	var b strings.Builder
	for _, s := range t.segments {
		if s.name == "" {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(values[s.name])
	}
	return b.String()
}

func pageValues(page, pages int) map[string]string {
	return map[string]string{
		placeholderPage:  strconv.Itoa(page),
		placeholderPages: strconv.Itoa(pages),
	}
}
