package commands_test

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psaab/pnfcli/pkg/auth"
	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/commands"
	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/mode"
	"github.com/psaab/pnfcli/pkg/session"
)

// script answers prompts from a fixed list of lines.
type script struct {
	answers []string
	prompts []string
}

func (p *script) next(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *script) ReadLine(prompt string) (string, error)     { return p.next(prompt) }
func (p *script) ReadPassword(prompt string) (string, error) { return p.next(prompt) }

type harness struct {
	reg    *cmdtree.Registry
	sess   *session.Session
	out    *bytes.Buffer
	prompt *script
}

func newHarness(t *testing.T, m mode.Mode, answers ...string) *harness {
	t.Helper()
	reg := cmdtree.NewRegistry()
	require.NoError(t, commands.Register(reg))
	out := &bytes.Buffer{}
	p := &script{answers: answers}
	sess := session.New(out, p)
	sess.Mode = m
	return &harness{reg: reg, sess: sess, out: out, prompt: p}
}

// call runs a command handler directly, bypassing visibility checks.
func (h *harness) call(t *testing.T, line string) error {
	t.Helper()
	parts := strings.Fields(line)
	cmd, ok := h.reg.Lookup(parts[0])
	require.True(t, ok, "command %q not registered", parts[0])
	h.out.Reset()
	return cmd.Exec(parts[1:], h.sess)
}

func TestHello(t *testing.T) {
	h := newHarness(t, mode.User)

	require.NoError(t, h.call(t, "hello world"))
	assert.Equal(t, "Hello, World!\n", h.out.String())

	require.NoError(t, h.call(t, "hello"))
	assert.Equal(t, "Hello there!\n", h.out.String())

	require.NoError(t, h.call(t, "hello Alice"))
	assert.Equal(t, "Hello, Alice!\n", h.out.String())

	assert.EqualError(t, h.call(t, "hello privileged"), "This 'hello privileged' is only valid in Privileged Mode")
	h.sess.Mode = mode.Config
	require.NoError(t, h.call(t, "hello config"))
	assert.Equal(t, "Hello in Config Mode!\n", h.out.String())
}

func TestEnableSecretTakesPrecedence(t *testing.T) {
	h := newHarness(t, mode.Config, "cisco", "s3cret")
	require.NoError(t, h.call(t, "enable password cisco"))
	require.NoError(t, h.call(t, "enable secret s3cret"))
	assert.True(t, auth.IsHashed(h.sess.Config.EnableSecret))

	h.sess.Mode = mode.User
	assert.EqualError(t, h.call(t, "enable"), "Incorrect password or secret.")
	assert.Equal(t, mode.User, h.sess.Mode)

	require.NoError(t, h.call(t, "enable"))
	assert.Equal(t, mode.Privileged, h.sess.Mode)
	assert.Equal(t, []string{"Password: ", "Password: "}, h.prompt.prompts)
}

func TestEnableOutsideUserMode(t *testing.T) {
	h := newHarness(t, mode.Privileged)
	assert.EqualError(t, h.call(t, "enable"), "The 'enable' command is only available in User EXEC mode.")
}

func TestExitWalksUp(t *testing.T) {
	h := newHarness(t, mode.Interface)
	h.sess.Interface = "g0/0"

	require.NoError(t, h.call(t, "exit"))
	assert.Equal(t, mode.Config, h.sess.Mode)
	assert.Empty(t, h.sess.Interface)

	require.NoError(t, h.call(t, "exit"))
	require.NoError(t, h.call(t, "exit"))
	assert.Equal(t, mode.User, h.sess.Mode)
	assert.EqualError(t, h.call(t, "exit"), "No mode to exit.")

	assert.ErrorIs(t, h.call(t, "exit ssh"), cmdtree.ErrExit)
}

func TestWriteMemory(t *testing.T) {
	h := newHarness(t, mode.Privileged)
	path := filepath.Join(t.TempDir(), "startup-config.json")
	h.sess.Store = configstore.New(path)
	h.sess.Config.Hostname = "Edge"

	require.NoError(t, h.call(t, "write memory"))
	assert.Contains(t, h.out.String(), "Configuration saved successfully.")
	assert.Contains(t, h.sess.Config.StartupConfig, "hostname Edge")
	assert.NotEmpty(t, h.sess.Config.LastWritten)

	saved, err := h.sess.Store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Edge", saved.Hostname)
	assert.Len(t, h.sess.Store.ListHistory(), 1)

	h.sess.Mode = mode.User
	assert.Error(t, h.call(t, "write memory"))
}

func TestReload(t *testing.T) {
	t.Run("confirm without saving", func(t *testing.T) {
		h := newHarness(t, mode.Config, "no", "y")
		h.sess.Interface = "g0/0"
		require.NoError(t, h.call(t, "reload"))
		assert.Equal(t, mode.User, h.sess.Mode)
		assert.Empty(t, h.sess.Interface)
		assert.Contains(t, h.out.String(), "Configuration not saved.")
		assert.Contains(t, h.out.String(), "System Bootstrap")
	})
	t.Run("abort", func(t *testing.T) {
		h := newHarness(t, mode.Privileged, "no", "no")
		require.NoError(t, h.call(t, "reload"))
		assert.Equal(t, mode.Privileged, h.sess.Mode)
		assert.Contains(t, h.out.String(), "Reload aborted.")
	})
	t.Run("bad answer", func(t *testing.T) {
		h := newHarness(t, mode.Privileged, "maybe")
		assert.EqualError(t, h.call(t, "reload"), "Invalid input. Please enter 'yes' or 'no'.")
		assert.Equal(t, mode.Privileged, h.sess.Mode)
	})
}

func TestPingFollowsRoutes(t *testing.T) {
	h := newHarness(t, mode.Config)
	assert.EqualError(t, h.call(t, "ping 10.0.0.0"), "IP address 10.0.0.0 is not reachable.")
	assert.Equal(t, 4, strings.Count(h.out.String(), "Request timed out."))

	require.NoError(t, h.call(t, "ip route 10.0.0.0 255.0.0.0 192.168.1.1"))
	require.NoError(t, h.call(t, "ping 10.0.0.0"))
	assert.Contains(t, h.out.String(), "Lost = 0 (0% loss)")

	assert.EqualError(t, h.call(t, "ping 10.0.0"), "Invalid IP address format.")
}

func TestRouteReplacedForSameDestination(t *testing.T) {
	h := newHarness(t, mode.Config)
	require.NoError(t, h.call(t, "ip route 10.0.0.0 255.0.0.0 192.168.1.1"))
	require.NoError(t, h.call(t, "ip route 10.0.0.0 255.0.0.0 192.168.1.2"))

	routes := h.sess.Net.SortedRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "192.168.1.2", routes[0].NextHop)
}

func TestClearOSPFProcess(t *testing.T) {
	h := newHarness(t, mode.Privileged, "no", "yes")
	h.sess.Net.OSPF.ProcessID = 10

	require.NoError(t, h.call(t, "clear ip ospf process"))
	assert.Contains(t, h.out.String(), "Clear process cancelled.")
	assert.Equal(t, 10, h.sess.Net.OSPF.ProcessID)

	require.NoError(t, h.call(t, "clear ip ospf process"))
	assert.Zero(t, h.sess.Net.OSPF.ProcessID)

	require.NoError(t, h.call(t, "clear"))
	assert.Equal(t, "\033[H\033[2J", h.out.String())
}

func TestServicePasswordEncryption(t *testing.T) {
	h := newHarness(t, mode.Config)
	require.NoError(t, h.call(t, "enable password cisco"))
	require.NoError(t, h.call(t, "service password-encryption"))

	assert.True(t, h.sess.Config.PasswordEncryption)
	assert.Equal(t, auth.Digest("cisco"), h.sess.Config.EncryptedPassword)
	assert.Empty(t, h.sess.Config.EncryptedSecret)
}

func TestTunnel(t *testing.T) {
	h := newHarness(t, mode.Config)
	require.NoError(t, h.call(t, "tunnel mode ipsec ipv4"))
	require.NoError(t, h.call(t, "tunnel dest 10.1.1.1"))
	require.NoError(t, h.call(t, "tunnel protection ipsec profile P1"))

	assert.Equal(t, "ipsec ipv4", h.sess.Config.TunnelMode)
	assert.Equal(t, "10.1.1.1", h.sess.Config.TunnelDestination)
	assert.Equal(t, "P1", h.sess.Config.TunnelProtectionProfile)
	assert.Error(t, h.call(t, "tunnel mode gre"))
}

func TestClockSet(t *testing.T) {
	h := newHarness(t, mode.Privileged)
	require.NoError(t, h.call(t, "clock set 12:30:00 29 February 2024"))
	assert.Contains(t, h.out.String(), "Clock updated successfully")
	assert.True(t, h.sess.Clock.IsSet())

	assert.Error(t, h.call(t, "clock set 12:30:00 29 February 2023"))
	assert.Error(t, h.call(t, "clock set 12:30:00 1 January 1992"))

	h.sess.Mode = mode.Config
	assert.EqualError(t, h.call(t, "clock set 12:30:00 1 January 2000"),
		"The 'clock set' command is only available in Privileged EXEC mode.")
}

func TestIfconfig(t *testing.T) {
	h := newHarness(t, mode.Privileged)
	require.NoError(t, h.call(t, "ifconfig"))
	assert.Contains(t, h.out.String(), "ens33")

	require.NoError(t, h.call(t, "ifconfig eth1 10.9.8.7 up"))
	assert.Contains(t, h.out.String(), "broadcast 10.9.8.255")
	assert.Contains(t, h.sess.Net.HostInterfaceNames(), "eth1")
}

func TestDebugNeedsConfirmation(t *testing.T) {
	h := newHarness(t, mode.Privileged, "no")
	assert.Error(t, h.call(t, "debug all"))

	h = newHarness(t, mode.Privileged, "yes")
	require.NoError(t, h.call(t, "debug all"))
	assert.Contains(t, h.out.String(), "turned on")
}

func TestBuiltinsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, cmd := range commands.Builtins() {
		assert.False(t, seen[cmd.Name], "duplicate %s", cmd.Name)
		seen[cmd.Name] = true
		assert.NotNil(t, cmd.Exec, cmd.Name)
	}
	// Every allow-listed name has a handler.
	for _, m := range mode.All {
		for _, name := range cmdtree.DefaultAllowLists.Names(m) {
			assert.True(t, seen[name], "%s allowed in %s but not registered", name, m)
		}
	}
}

