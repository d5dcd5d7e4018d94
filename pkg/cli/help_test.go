package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psaab/pnfcli/pkg/mode"
)

func listing(header string, items ...string) string {
	var sb strings.Builder
	sb.WriteString(header + "\n")
	for _, item := range items {
		sb.WriteString("  " + item + "\n")
	}
	return sb.String()
}

func TestShowHelpKeepsDeclaredOrder(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en")
	show, ok := sh.reg.Lookup("show")
	require.True(t, ok)

	assert.Equal(t, listing("Possible completions:", show.Subcommands...), sh.run(t, "show ?"))
	assert.Equal(t, listing("Possible completions:", show.Subcommands...), sh.run(t, "show?"))
}

func TestHelpBranches(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en")

	tests := []struct {
		name string
		line string
		want string
	}{
		{"prefix of visible names", "con?", listing("Possible completions for 'con?':", "configure")},
		{"several prefix matches", "cl?", listing("Possible completions for 'cl?':", "clear", "clock")},
		{"partial subcommand", "configure t?", listing("Possible completions:", "terminal")},
		{"unmatched subcommand", "configure z?", "No matching commands found\n"},
		{"command without subcommands", "ping 10?", "No subcommands available\n"},
		{"options after trailing space", "enable x ?", listing("Possible completions:", "password", "secret")},
		{"no options after trailing space", "configure terminal ?", "No more options available\n"},
		{"options of exact name", "ping?", listing("Possible completions:", "<ip-address>    - Enter the ip-address")},
		{"nothing matches", "zzz?", "No more options available\n"},
		{"too many words", "ping 1.1.1.1 repeat ?", "No additional parameters available\n"},
		{"pipe filters", "show clock | ?", "Possible completions:\n" +
			"  begin                Begin with the line that matches\n" +
			"  count                Count number of lines that match\n" +
			"  exclude              Exclude lines that match\n" +
			"  include              Include lines that match\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sh.run(t, tt.line))
		})
	}
}

func TestHelpWithoutSubcommandsOrOptions(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en")
	assert.Equal(t, "No subcommands or more options available\n", sh.run(t, "help?"))
}

func TestEmptyHelpPrintsModeTable(t *testing.T) {
	sh := newShell(t)
	out := sh.run(t, "?")
	assert.Contains(t, out, "Available commands")
	assert.Contains(t, out, "enable            - Enter privileged mode\n")
	assert.NotContains(t, out, "configure")
}

func TestHelpDoesNotChangeSession(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en", "conf t", "int g0/2")
	before := sh.sess.Prompt()

	for _, line := range []string{"?", "exit?", "int ?", "ip a?", "shutdown x y ?", "e?"} {
		sh.run(t, line)
		assert.Equal(t, mode.Interface, sh.sess.Mode, line)
		assert.Equal(t, "g0/2", sh.sess.Interface, line)
		assert.Equal(t, before, sh.sess.Prompt(), line)
	}
}
