package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/psaab/pnfcli/pkg/cmdtree"
)

// pipeFilters are the output filters accepted after " | ".
var pipeFilters = []cmdtree.Candidate{
	{Name: "begin", Desc: "Begin with the line that matches"},
	{Name: "count", Desc: "Count number of lines that match"},
	{Name: "exclude", Desc: "Exclude lines that match"},
	{Name: "include", Desc: "Include lines that match"},
}

func pipeFilterNames() []string {
	names := make([]string, len(pipeFilters))
	for i, f := range pipeFilters {
		names[i] = f.Name
	}
	return names
}

// pipe is a parsed "| <filter> <pattern>" suffix.
type pipe struct {
	filter  string
	pattern string
}

// extractPipe splits a line at the last " | " whose first word resolves
// to a filter. Lines without a recognised filter are returned unchanged.
func extractPipe(line string) (string, pipe, bool) {
	idx := strings.LastIndex(line, " | ")
	if idx < 0 {
		return line, pipe{}, false
	}
	cmd := strings.TrimSpace(line[:idx])
	word, arg, _ := strings.Cut(strings.TrimSpace(line[idx+3:]), " ")
	filter, ok := cmdtree.Resolve(word, pipeFilterNames())
	if !ok || cmd == "" {
		return line, pipe{}, false
	}
	return cmd, pipe{filter: filter, pattern: strings.TrimSpace(arg)}, true
}

// apply filters output into w.
func (p pipe) apply(w io.Writer, output string) error {
	var re *regexp.Regexp
	if p.pattern != "" {
		var err error
		if re, err = regexp.Compile(p.pattern); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", p.pattern, err)
		}
	} else if p.filter != "count" {
		return fmt.Errorf("'| %s' needs a pattern", p.filter)
	}

	lines := strings.Split(output, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var sb strings.Builder
	switch p.filter {
	case "include":
		for _, line := range lines {
			if re.MatchString(line) {
				sb.WriteString(line + "\n")
			}
		}
	case "exclude":
		for _, line := range lines {
			if !re.MatchString(line) {
				sb.WriteString(line + "\n")
			}
		}
	case "begin":
		found := false
		for _, line := range lines {
			if !found && re.MatchString(line) {
				found = true
			}
			if found {
				sb.WriteString(line + "\n")
			}
		}
	case "count":
		n := 0
		for _, line := range lines {
			if re == nil || re.MatchString(line) {
				n++
			}
		}
		fmt.Fprintf(&sb, "Count: %d lines\n", n)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
