package view

import "strings"

// ParseSkills splits comma separated text into trimmed, non-empty entries,
// keeping their order.
func ParseSkills(text string) []string {
	out := []string{}
	for _, s := range strings.Split(text, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
