package fatturapa

import "strings"

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ".")))
}
