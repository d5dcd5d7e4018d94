package session

import "strconv"

// expandRange expands "g0/1" .. "g0/3" into g0/1 g0/2 g0/3. The last end
// may be given as just the number ("g0/1 - 3").
func expandRange(first, last string) []string {
	prefix, lo, ok := splitTrailingNumber(first)
	if !ok {
		return []string{first, last}
	}
	lastPrefix, hi, ok := splitTrailingNumber(last)
	if !ok || (lastPrefix != "" && lastPrefix != prefix) || hi < lo || hi-lo > 64 {
		return []string{first, last}
	}
	out := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, prefix+strconv.Itoa(n))
	}
	return out
}

func splitTrailingNumber(s string) (string, int, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return "", 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return "", 0, false
	}
	return s[:i], n, true
}
