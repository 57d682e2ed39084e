package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTodoLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"extras"},
			want: []string{"extras"},
		},
		{
			name: "direct todo id first token",
			in:   []string{"extras", "todo-3f9a1c2e"},
			want: []string{"extras", "todos", "show", "todo-3f9a1c2e"},
		},
		{
			name: "direct todo id after value flag",
			in:   []string{"extras", "--dir", "./tmp-data", "todo-3f9a1c2e"},
			want: []string{"extras", "--dir", "./tmp-data", "todos", "show", "todo-3f9a1c2e"},
		},
		{
			name: "direct todo id after equals flag",
			in:   []string{"extras", "--format=yaml", "todo-3f9a1c2e"},
			want: []string{"extras", "--format=yaml", "todos", "show", "todo-3f9a1c2e"},
		},
		{
			name: "direct todo id after bool flag",
			in:   []string{"extras", "--pretty", "todo-3f9a1c2e"},
			want: []string{"extras", "--pretty", "todos", "show", "todo-3f9a1c2e"},
		},
		{
			name: "direct todo id after double dash",
			in:   []string{"extras", "--dir", "./tmp-data", "--", "todo-3f9a1c2e"},
			want: []string{"extras", "--dir", "./tmp-data", "--", "todos", "show", "todo-3f9a1c2e"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"extras", "todos", "show", "todo-3f9a1c2e"},
			want: []string{"extras", "todos", "show", "todo-3f9a1c2e"},
		},
		{
			name: "bare prefix not rewritten",
			in:   []string{"extras", "todo-"},
			want: []string{"extras", "todo-"},
		},
		{
			name: "expense id not rewritten",
			in:   []string{"extras", "exp-1a2b3c4d"},
			want: []string{"extras", "exp-1a2b3c4d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTodoLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectTodoLookupArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
