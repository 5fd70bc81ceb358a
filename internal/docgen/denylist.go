package docgen

import "strings"

// MatchDeniedImport returns the first deny-listed name whose import form
// appears in the source text, or "". The check is textual: it matches
// "import X" / "from X " anywhere in the file, so it can false-positive
// inside comments or string literals and miss aliased imports.
func MatchDeniedImport(src string, names []string) string {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.Contains(src, "import "+name) || strings.Contains(src, "from "+name+" ") {
			return name
		}
	}
	return ""
}
