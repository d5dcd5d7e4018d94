package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/psaab/pnfcli/pkg/cmdtree"
)

// completer implements readline.AutoCompleter over the commands visible in
// the session's current mode.
type completer struct {
	d *Dispatcher
}

// Do returns the suffixes that complete the word under the cursor and the
// length in runes of the part already typed.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	trailingSpace := strings.HasSuffix(text, " ")

	if idx := strings.LastIndex(text, "|"); idx >= 0 {
		after := strings.TrimLeft(text[idx+1:], " ")
		if strings.Contains(after, " ") {
			return nil, 0
		}
		return suffixes(cmdtree.FilterPrefix(pipeFilterNames(), after), after)
	}

	words := strings.Fields(text)
	var partial string
	if !trailingSpace && len(words) > 0 {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	visible := c.d.reg.Visible(c.d.sess.Mode)
	switch len(words) {
	case 0:
		return suffixes(cmdtree.FilterPrefix(visible, partial), partial)
	case 1:
		name, ok := cmdtree.Resolve(words[0], visible)
		if !ok {
			return nil, 0
		}
		cmd, ok := c.d.reg.Lookup(name)
		if !ok {
			return nil, 0
		}
		items := cmd.Subcommands
		if len(items) == 0 {
			items = cmd.Options
		}
		return suffixes(firstWords(cmdtree.FilterPrefix(items, partial)), partial)
	}
	return nil, 0
}

// firstWords keeps the first word of each item, dropping repeats and
// "<placeholder>" hints, so that "crypto key" and "crypto map" complete to
// a single "crypto".
func firstWords(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range items {
		w, _, _ := strings.Cut(item, " ")
		if !seen[w] && !strings.HasPrefix(w, "<") {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func suffixes(items []string, partial string) ([][]rune, int) {
	if len(items) == 0 {
		return nil, 0
	}
	out := make([][]rune, len(items))
	for i, item := range items {
		out[i] = []rune(item[len(partial):] + " ")
	}
	return out, utf8.RuneCountInString(partial)
}
