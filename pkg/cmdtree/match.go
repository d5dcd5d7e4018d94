package cmdtree

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Resolve returns the only candidate starting with prefix. No match and
// more than one match both fail; an exact name that is also a prefix of
// another candidate is therefore ambiguous too.
func Resolve(prefix string, candidates []string) (string, bool) {
	var found string
	n := 0
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			found = c
			n++
			if n > 1 {
				return "", false
			}
		}
	}
	return found, n == 1
}

// FilterPrefix returns only items that start with the given prefix, in
// their original order.
func FilterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		return items
	}
	var result []string
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			result = append(result, item)
		}
	}
	return result
}

// WriteList prints header followed by one indented line per item, as a
// single write so readline redraws once.
func WriteList(w io.Writer, header string, items []string) {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, item := range items {
		fmt.Fprintf(&sb, "  %s\n", item)
	}
	io.WriteString(w, sb.String())
}

// WriteHelp prints aligned completion candidates to w.
func WriteHelp(w io.Writer, candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	maxWidth := 20
	for _, c := range candidates {
		if len(c.Name)+2 > maxWidth {
			maxWidth = len(c.Name) + 2
		}
	}
	var sb strings.Builder
	sb.WriteString("Possible completions:\n")
	for _, c := range candidates {
		if c.Desc != "" {
			fmt.Fprintf(&sb, "  %-*s %s\n", maxWidth, c.Name, c.Desc)
		} else {
			fmt.Fprintf(&sb, "  %s\n", c.Name)
		}
	}
	io.WriteString(w, sb.String())
}
