package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestTranslateLegacyArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no args opens settings", nil, []string{"configure"}},
		{"run", []string{"/s"}, []string{"run"}},
		{"upper case", []string{"/S"}, []string{"run"}},
		{"preview with window", []string{"/p", "1234"}, []string{"preview", "1234"}},
		{"preview without window", []string{"/p"}, []string{"preview"}},
		{"configure", []string{"/c"}, []string{"configure"}},
		{"configure with inline window", []string{"/c:5678"}, []string{"configure", "5678"}},
		{"subcommands pass through", []string{"history", "--limit", "5"}, []string{"history", "--limit", "5"}},
		{"flags pass through", []string{"--seed", "3", "run"}, []string{"--seed", "3", "run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translateLegacyArgs(tt.args)
			if err != nil {
				t.Fatalf("translateLegacyArgs(%v) error: %v", tt.args, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("translateLegacyArgs(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestTranslateLegacyArgsErrors(t *testing.T) {
	for _, args := range [][]string{{"/x"}, {"/a", "1"}, {"/s", "extra"}} {
		if _, err := translateLegacyArgs(args); err == nil {
			t.Errorf("translateLegacyArgs(%v) expected error", args)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "preview", "configure", "serve", "history", "about"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestRenderAbout(t *testing.T) {
	out, err := renderAbout(80)
	if err != nil {
		t.Fatalf("renderAbout: %v", err)
	}
	if !strings.Contains(out, "Tetris Saver") {
		t.Errorf("about output missing title:\n%s", out)
	}
}
