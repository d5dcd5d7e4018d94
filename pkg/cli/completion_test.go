package cli

import (
	"io"
	"testing"

	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/commands"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

func testCompleter(t *testing.T, m mode.Mode) *completer {
	t.Helper()
	reg := cmdtree.NewRegistry()
	if err := commands.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	sess := session.New(io.Discard, nil)
	sess.Mode = m
	return &completer{d: NewDispatcher(reg, sess, nil)}
}

func TestCompleter(t *testing.T) {
	tests := []struct {
		name    string
		mode    mode.Mode
		line    string
		want    []string
		wantLen int
	}{
		{"first word", mode.Privileged, "conf", []string{"igure "}, 4},
		{"first word ambiguous", mode.Privileged, "cl", []string{"ear ", "ock "}, 2},
		{"subcommand", mode.Privileged, "configure t", []string{"erminal "}, 1},
		{"subcommand after space", mode.Privileged, "debug ", []string{"all "}, 0},
		{"multi-word subcommands collapse", mode.Privileged, "show cr", []string{"ypto "}, 2},
		{"options without placeholders", mode.Config, "enable ", []string{"password ", "secret "}, 0},
		{"not visible", mode.User, "conf", nil, 0},
		{"third word", mode.Privileged, "configure terminal x", nil, 0},
		{"pipe filter", mode.Privileged, "show clock | inc", []string{"lude "}, 3},
		{"pipe pattern", mode.Privileged, "show clock | include a", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCompleter(t, tt.mode)
			line := []rune(tt.line)
			got, n := c.Do(line, len(line))
			if n != tt.wantLen {
				t.Errorf("length = %d, want %d", n, tt.wantLen)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates %q, want %q", len(got), got, tt.want)
			}
			for i := range got {
				if string(got[i]) != tt.want[i] {
					t.Errorf("candidate %d = %q, want %q", i, string(got[i]), tt.want[i])
				}
			}
		})
	}
}

func TestExtractPipe(t *testing.T) {
	tests := []struct {
		line    string
		cmd     string
		filter  string
		pattern string
		ok      bool
	}{
		{"show run | include ip", "show run", "include", "ip", true},
		{"show run | i ip route", "show run", "include", "ip route", true},
		{"show run | e x", "show run", "exclude", "x", true},
		{"show run | count", "show run", "count", "", true},
		{"show run | c", "show run", "count", "", true},
		{"show run | bogus x", "show run | bogus x", "", "", false},
		{"show run", "show run", "", "", false},
		{" | include x", " | include x", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, p, ok := extractPipe(tt.line)
			if ok != tt.ok || cmd != tt.cmd || p.filter != tt.filter || p.pattern != tt.pattern {
				t.Errorf("extractPipe(%q) = %q, %+v, %v", tt.line, cmd, p, ok)
			}
		})
	}
}

func TestSuffixesRuneOffset(t *testing.T) {
	got, n := suffixes([]string{"gé0/1", "gé0/2"}, "gé")
	if n != 2 {
		t.Errorf("offset = %d, want 2", n)
	}
	if len(got) != 2 || string(got[0]) != "0/1 " || string(got[1]) != "0/2 " {
		t.Errorf("suffixes = %q", got)
	}
	if got, n := suffixes(nil, "gé"); got != nil || n != 0 {
		t.Errorf("empty = %q, %d", got, n)
	}
}
