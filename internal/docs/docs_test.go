package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	want := []string{"api", "config", "dates", "tui"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Topics()=%v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		topic string
		ok    bool
		want  string
	}{
		{topic: "dates", ok: true, want: "12:00"},
		{topic: " API ", ok: true, want: "/api/todos"},
		{topic: "config", ok: true, want: "EXTRAS_CONFIG_DIR"},
		{topic: "", ok: false},
		{topic: "nope", ok: false},
		{topic: "../docs", ok: false},
	}
	for _, tt := range tests {
		body, ok := Get(tt.topic)
		if ok != tt.ok {
			t.Fatalf("Get(%q) ok=%v, want %v", tt.topic, ok, tt.ok)
		}
		if ok && !strings.Contains(body, tt.want) {
			t.Fatalf("Get(%q) missing %q", tt.topic, tt.want)
		}
	}
}
