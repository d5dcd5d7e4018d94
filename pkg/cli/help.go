package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
)

// Help prints contextual help for input, the line with its "?" removed.
// It never changes the session.
func (d *Dispatcher) Help(input string) {
	d.metrics.helpRequest()
	w := d.sess.Out

	if idx := strings.LastIndex(input, "|"); idx >= 0 {
		d.pipeHelp(input[idx+1:])
		return
	}

	parts := strings.Fields(input)
	visible := d.reg.Visible(d.sess.Mode)

	switch len(parts) {
	case 0:
		cmdtree.WriteModeHelp(w, d.sess.Mode)

	case 1:
		name := parts[0]
		if slices.Contains(visible, name) {
			cmd, _ := d.reg.Lookup(name)
			switch {
			case len(cmd.Subcommands) > 0:
				cmdtree.WriteList(w, "Possible completions:", cmd.Subcommands)
			case len(cmd.Options) > 0:
				cmdtree.WriteList(w, "Possible completions:", cmd.Options)
			default:
				d.sess.Println("No subcommands or more options available")
			}
			return
		}
		if matches := cmdtree.FilterPrefix(visible, name); len(matches) > 0 {
			cmdtree.WriteList(w, fmt.Sprintf("Possible completions for '%s?':", name), matches)
			return
		}
		d.writeOptions(name)

	case 2:
		if slices.Contains(visible, parts[0]) && !strings.HasSuffix(input, " ") {
			cmd, _ := d.reg.Lookup(parts[0])
			if len(cmd.Subcommands) == 0 {
				d.sess.Println("No subcommands available")
				return
			}
			if matches := cmdtree.FilterPrefix(cmd.Subcommands, parts[1]); len(matches) > 0 {
				cmdtree.WriteList(w, "Possible completions:", matches)
			} else {
				d.sess.Println("No matching commands found")
			}
			return
		}
		d.writeOptions(parts[0])

	default:
		d.sess.Println("No additional parameters available")
	}
}

// writeOptions lists the Options of the command registered as name.
func (d *Dispatcher) writeOptions(name string) {
	if cmd, ok := d.reg.Lookup(name); ok && len(cmd.Options) > 0 {
		cmdtree.WriteList(d.sess.Out, "Possible completions:", cmd.Options)
		return
	}
	d.sess.Println("No more options available")
}

func (d *Dispatcher) pipeHelp(after string) {
	partial := strings.TrimSpace(after)
	if strings.Contains(partial, " ") || (partial != "" && strings.HasSuffix(after, " ")) {
		d.sess.Println("  <pattern>  Regular expression")
		return
	}
	var matches []cmdtree.Candidate
	for _, f := range pipeFilters {
		if strings.HasPrefix(f.Name, partial) {
			matches = append(matches, f)
		}
	}
	if len(matches) == 0 {
		d.sess.Println("No matching commands found")
		return
	}
	cmdtree.WriteHelp(d.sess.Out, matches)
}
