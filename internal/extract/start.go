package extract

import "strings"

// ParseStartLine splits the first wizard answer, "<child> <care worker initials>".
// The last token is the care worker's initials; everything before it names the child.
func ParseStartLine(line string) (child, initials string, ok bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1], true
}
