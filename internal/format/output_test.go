package format

import (
	"bytes"
	"strings"
	"testing"
)

type payload struct {
	ID          string   `json:"id"`
	DueDate     string   `json:"dueDate,omitempty"`
	AmountCents int64    `json:"amountCents"`
	Done        bool     `json:"done"`
	Tags        []string `json:"tags"`
	Ratio       float64  `json:"ratio"`
}

func sample() payload {
	return payload{
		ID:          "todo-abcd",
		DueDate:     "2026-10-15T13:00:00Z",
		AmountCents: 9007199254740993, // beyond float64 precision
		Done:        true,
		Tags:        []string{"a", "b"},
		Ratio:       0.5,
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{"": "json", "JSON": "json", "edn": "edn", "yml": "yaml", " yaml ": "yaml"}
	for in, want := range cases {
		got, err := Normalize(in)
		if err != nil || got != want {
			t.Fatalf("Normalize(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := Normalize("xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
	var buf bytes.Buffer
	if err := Write(&buf, sample(), "xml", false); err == nil {
		t.Fatalf("expected Write to reject unknown format")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{"id":"todo-abcd","dueDate":"2026-10-15T13:00:00Z","amountCents":9007199254740993,"done":true,"tags":["a","b"],"ratio":0.5}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteEDN(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:amount-cents 9007199254740993 :done true :due-date #inst "2026-10-15T13:00:00Z" :id "todo-abcd" :ratio 0.5 :tags ["a" "b"]}` + "\n"
	if buf.String() != want {
		t.Fatalf("got  %q\nwant %q", buf.String(), want)
	}

	buf.Reset()
	if err := WriteEDN(&buf, []any{}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Fatalf("empty vector: %q", buf.String())
	}

	buf.Reset()
	if err := WriteEDN(&buf, map[string]any{"a": []int{1}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	if buf.String() != "{\n  :a [\n    1\n  ]\n}\n" {
		t.Fatalf("pretty: %q", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"id: todo-abcd\n", "amountCents: 9007199254740993\n", "done: true\n", "tags:\n  - a\n  - b\n", "ratio: 0.5\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestKeyword(t *testing.T) {
	cases := map[string]string{"id": "id", "dueDate": "due-date", "amountCents": "amount-cents", "snake_case": "snake-case"}
	for in, want := range cases {
		if got := keyword(in); got != want {
			t.Fatalf("keyword(%q) = %q want %q", in, got, want)
		}
	}
}
