package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// WriteEDN writes v as EDN. Map keys become kebab-case keywords
// (dueDate -> :due-date) and RFC 3339 strings become #inst literals.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty, indent: 2}
	enc.value(&buf, x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
	indent int
}

func (e ednEncoder) value(buf *bytes.Buffer, v any, level int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case int64:
		buf.WriteString(strconv.FormatInt(t, 10))
	case float64:
		buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case string:
		if isInstant(t) {
			buf.WriteString("#inst ")
		}
		buf.WriteString(strconv.Quote(t))
	case []any:
		e.open(buf, '[')
		for i, it := range t {
			e.sep(buf, i, level+1)
			e.value(buf, it, level+1)
		}
		e.close(buf, ']', len(t), level)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.open(buf, '{')
		for i, k := range keys {
			e.sep(buf, i, level+1)
			buf.WriteString(":" + keyword(k) + " ")
			e.value(buf, t[k], level+1)
		}
		e.close(buf, '}', len(keys), level)
	default:
		buf.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

func (e ednEncoder) open(buf *bytes.Buffer, c byte) { buf.WriteByte(c) }

func (e ednEncoder) sep(buf *bytes.Buffer, i, level int) {
	switch {
	case e.pretty:
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*e.indent))
	case i > 0:
		buf.WriteByte(' ')
	}
}

func (e ednEncoder) close(buf *bytes.Buffer, c byte, n, level int) {
	if e.pretty && n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*e.indent))
	}
	buf.WriteByte(c)
}

func isInstant(s string) bool {
	if len(s) < len("2006-01-02T15:04:05Z") {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// keyword converts a json field name to a kebab-case EDN keyword.
func keyword(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
