package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsLuaScript(t *testing.T) {
	dir := t.TempDir()

	shebang := filepath.Join(dir, "tool")
	if err := os.WriteFile(shebang, []byte("#!/usr/bin/env luaui\nprint('hi')\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plain, []byte("just text"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !isLuaScript(shebang) {
		t.Error("shebang file not recognized")
	}
	if isLuaScript(plain) {
		t.Error("plain file recognized as script")
	}
	if isLuaScript(dir) {
		t.Error("directory recognized as script")
	}
	if isLuaScript(filepath.Join(dir, "missing")) {
		t.Error("missing file recognized as script")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"one", []string{"one"}},
		{"a\nb", []string{"a", "b"}},
		{"a\nb\n", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitLines(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitLines(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitLines(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
