package cli_test

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psaab/pnfcli/pkg/cli"
	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/commands"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

type shell struct {
	reg     *cmdtree.Registry
	sess    *session.Session
	out     *bytes.Buffer
	metrics *cli.Metrics
	d       *cli.Dispatcher
}

func newShell(t *testing.T) *shell {
	t.Helper()
	reg := cmdtree.NewRegistry()
	require.NoError(t, commands.Register(reg))
	out := &bytes.Buffer{}
	sess := session.New(out, nil)
	m := cli.NewMetrics()
	return &shell{reg: reg, sess: sess, out: out, metrics: m, d: cli.NewDispatcher(reg, sess, m)}
}

// run executes lines and returns the output of the last one.
func (sh *shell) run(t *testing.T, lines ...string) string {
	t.Helper()
	for _, line := range lines {
		sh.out.Reset()
		require.NoError(t, sh.d.Execute(line), "line %q", line)
	}
	return sh.out.String()
}

func TestEnableAbbreviation(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en")
	assert.Equal(t, mode.Privileged, sh.sess.Mode)
	assert.Equal(t, "Router#", sh.sess.Prompt())
}

func TestInterfaceSelection(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en", "conf t", "int g0/0")
	assert.Equal(t, mode.Interface, sh.sess.Mode)
	assert.Equal(t, "g0/0", sh.sess.Interface)
	assert.Equal(t, "Router(config-if)#", sh.sess.Prompt())
}

func TestShutdownWithoutSelection(t *testing.T) {
	sh := newShell(t)
	sh.sess.Mode = mode.Interface
	out := sh.run(t, "shutdown")
	assert.Equal(t, "Error: No interface selected. Use the 'interface' command first.\n", out)
	assert.Equal(t, mode.Interface, sh.sess.Mode)
}

func TestRouteReplacedByDestination(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en", "conf t",
		"ip route 10.0.0.0 255.0.0.0 192.168.1.1",
		"ip route 10.0.0.0 255.0.0.0 192.168.1.2")
	require.Len(t, sh.sess.Net.Routes, 1)
	r := sh.sess.Net.Routes[netip.MustParseAddr("10.0.0.0")]
	assert.Equal(t, "192.168.1.2", r.NextHop)
}

func TestUnresolvedInput(t *testing.T) {
	sh := newShell(t)
	tests := []struct {
		line string
		want string
	}{
		{"e", "Ambiguous command or command not available in current mode: e\n"},
		{"configure", "Ambiguous command or command not available in current mode: configure\n"},
		{"nonsense", "Ambiguous command or command not available in current mode: nonsense\n"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, sh.run(t, tt.line))
			assert.Equal(t, mode.User, sh.sess.Mode)
		})
	}

	const want = `
# HELP pnfcli_unresolved_total Input words that did not resolve to a unique command or subcommand.
# TYPE pnfcli_unresolved_total counter
pnfcli_unresolved_total{kind="command"} 3
`
	require.NoError(t, testutil.GatherAndCompare(sh.metrics.Registry(), strings.NewReader(want), "pnfcli_unresolved_total"))
}

func TestSubcommandResolution(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en")

	assert.Equal(t, "Incomplete command. Subcommand required.\n", sh.run(t, "configure"))
	assert.Equal(t, "Ambiguous or invalid subcommand: x\n", sh.run(t, "configure x"))
	assert.Equal(t, mode.Privileged, sh.sess.Mode)

	sh.run(t, "configure t")
	assert.Equal(t, mode.Config, sh.sess.Mode)
}

func TestHandlerErrorIsPrinted(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en")
	out := sh.run(t, "enable")
	assert.Equal(t, "Error: The 'enable' command is only available in User EXEC mode.\n", out)

	const want = `
# HELP pnfcli_commands_total Commands dispatched, by resolved name and result.
# TYPE pnfcli_commands_total counter
pnfcli_commands_total{command="enable",result="error"} 1
pnfcli_commands_total{command="enable",result="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(sh.metrics.Registry(), strings.NewReader(want), "pnfcli_commands_total"))
}

func TestModeTransitionsCounted(t *testing.T) {
	sh := newShell(t)
	sh.run(t, "en", "conf t", "exit", "exit")

	const want = `
# HELP pnfcli_mode_transitions_total Mode changes, by destination mode.
# TYPE pnfcli_mode_transitions_total counter
pnfcli_mode_transitions_total{to="ConfigMode"} 1
pnfcli_mode_transitions_total{to="PrivilegedMode"} 2
pnfcli_mode_transitions_total{to="UserMode"} 1
`
	require.NoError(t, testutil.GatherAndCompare(sh.metrics.Registry(), strings.NewReader(want), "pnfcli_mode_transitions_total"))
}

func TestExit(t *testing.T) {
	sh := newShell(t)

	require.ErrorIs(t, sh.d.Execute("exit cli"), cli.ErrExit)
	assert.Equal(t, "Exiting CLI...\n", sh.out.String())

	sh.out.Reset()
	require.ErrorIs(t, sh.d.Execute("exit ssh"), cli.ErrExit)
	assert.Equal(t, "Terminating SSH session...\n", sh.out.String())
}

func TestEmptyLineIgnored(t *testing.T) {
	sh := newShell(t)
	assert.Empty(t, sh.run(t, "", "   "))
	assert.Equal(t, mode.User, sh.sess.Mode)
}

func TestDynamicCommandVisibility(t *testing.T) {
	sh := newShell(t)
	assert.Equal(t, "Hello, World!\n", sh.run(t, "hello world"))
	assert.Equal(t, "Error: This 'hello privileged' is only valid in Privileged Mode\n", sh.run(t, "hello privileged"))

	sh.run(t, "en")
	assert.Equal(t, "Hello in Privileged Mode!\n", sh.run(t, "hello p"))

	sh.run(t, "conf t")
	assert.Equal(t, "Hello in Config Mode!\n", sh.run(t, "hello config"))

	sh.run(t, "int g0/1")
	assert.Equal(t, "Hello, Friend!\n", sh.run(t, "hello fr"))

	sh.sess.Mode = mode.Vlan
	assert.Equal(t, "Ambiguous command or command not available in current mode: hello\n", sh.run(t, "hello world"))
}

func TestPipes(t *testing.T) {
	sh := newShell(t)
	tests := []struct {
		line string
		want string
	}{
		{"show version | include Router", "PNF Router\n"},
		{"show version | i ^Device", "Device Details... \n"},
		{"show version | exclude \\S", " \n \n"},
		{"show version | count", "Count: 8 lines\n"},
		{"show version | count ^ROM", "Count: 1 lines\n"},
		{"show version | include (", "Error: invalid pattern \"(\": error parsing regexp: missing closing ): `(`\n"},
		{"show version | include", "Error: '| include' needs a pattern\n"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, sh.run(t, tt.line))
		})
	}

	out := sh.run(t, "show version | begin ROM")
	assert.True(t, strings.HasPrefix(out, "ROM: System Bootstrap"), out)
	assert.True(t, strings.HasSuffix(out, "PNF Router\n"), out)
}
