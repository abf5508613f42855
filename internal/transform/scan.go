package transform

import "regexp"

// Specifier extraction is intentionally textual: the import map only
// needs the specifier strings, not a full module graph, and a regex scan
// keeps broken files scannable where a parser would give up.
var (
	staticImportRe  = regexp.MustCompile(`(?m)^\s*import\s+(?:[\w${},*\s]+\s+from\s+)?['"]([^'"]+)['"]`)
	exportFromRe    = regexp.MustCompile(`(?m)^\s*export\s+[\w${},*\s]+\s+from\s+['"]([^'"]+)['"]`)
	dynamicImportRe = regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`)
)

// scanImports returns every module specifier referenced by source, in
// first-appearance order with duplicates removed.
func scanImports(source string) []string {
	var specifiers []string
	seen := make(map[string]bool)

	add := func(matches [][]string) {
		for _, m := range matches {
			if spec := m[1]; !seen[spec] {
				seen[spec] = true
				specifiers = append(specifiers, spec)
			}
		}
	}

	add(staticImportRe.FindAllStringSubmatch(source, -1))
	add(exportFromRe.FindAllStringSubmatch(source, -1))
	add(dynamicImportRe.FindAllStringSubmatch(source, -1))

	return specifiers
}

// isBareSpecifier reports whether spec names a third-party package
// rather than a file in the tree.
func isBareSpecifier(spec string) bool {
	if spec == "" {
		return false
	}
	switch spec[0] {
	case '/', '.':
		return false
	}
	return true
}
