package transform

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Cyclone1070/forge/internal/config"
)

// ImportMap is the browser import map: module specifier to resolvable
// URL. Serializes directly into the document's importmap script tag.
type ImportMap struct {
	Imports map[string]string `json:"imports"`
}

// runtimePackages are always mapped: the preview bootstrap imports
// react-dom/client, and compiled JSX imports react/jsx-runtime.
var runtimePackages = []string{"react", "react-dom/client", "react/jsx-runtime"}

// buildImportMap registers, for each compiled module, its absolute path,
// extension-less form, alias form, and a relative form per potential
// importer. Registration order is sorted by path so duplicate specifiers
// resolve deterministically; where an extension-less specifier is
// ambiguous the preferred extension wins. Bare specifiers found in any
// source file resolve through the CDN template.
func buildImportMap(modules map[string]string, files map[string]string, cfg config.PreviewConfig) ImportMap {
	imports := make(map[string]string)

	for _, pkg := range runtimePackages {
		imports[pkg] = fmt.Sprintf(cfg.CDNTemplate, pkg)
	}

	paths := make([]string, 0, len(modules))
	for p := range modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	// Pick the winning file for each extension-less form up front, so
	// "./Foo" prefers Foo.jsx over Foo.tsx regardless of sort order.
	extlessWinner := make(map[string]string)
	for _, p := range paths {
		key := trimExt(p)
		if current, ok := extlessWinner[key]; !ok || extPriority(p) < extPriority(current) {
			extlessWinner[key] = p
		}
	}

	for _, p := range paths {
		url := modules[p]
		wins := extlessWinner[trimExt(p)] == p

		imports[p] = url
		if wins {
			imports[trimExt(p)] = url
		}

		if alias, ok := aliasSpecifier(p, cfg); ok {
			imports[alias] = url
			if wins {
				imports[trimExt(alias)] = url
			}
		}

		// Relative resolution is computed per importer: the same file
		// needs a different specifier from each directory that can
		// reference it.
		for _, importer := range paths {
			if importer == p {
				continue
			}
			rel := relativeSpecifier(path.Dir(importer), p)
			imports[rel] = url
			if wins {
				imports[trimExt(rel)] = url
			}
		}
	}

	// Bare package imports anywhere in the snapshot fall through to the
	// CDN, unless something above already claimed the specifier.
	filePaths := make([]string, 0, len(files))
	for p := range files {
		filePaths = append(filePaths, p)
	}
	sort.Strings(filePaths)

	for _, p := range filePaths {
		if !IsSource(p) {
			continue
		}
		for _, spec := range scanImports(files[p]) {
			if !isBareSpecifier(spec) {
				continue
			}
			if _, ok := imports[spec]; !ok {
				imports[spec] = fmt.Sprintf(cfg.CDNTemplate, spec)
			}
		}
	}

	return ImportMap{Imports: imports}
}

// trimExt strips a recognized source extension; other extensions are
// kept since "/styles.css" without ".css" means nothing.
func trimExt(p string) string {
	ext := path.Ext(p)
	if _, ok := sourceLoaders[ext]; ok {
		return strings.TrimSuffix(p, ext)
	}
	return p
}

// aliasSpecifier rewrites p under the configured alias, e.g. "/App.jsx"
// to "@/App.jsx" with source root "/" and alias "@".
func aliasSpecifier(p string, cfg config.PreviewConfig) (string, bool) {
	if !strings.HasPrefix(p, cfg.SourceRoot) {
		return "", false
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(p, cfg.SourceRoot), "/")
	if rest == "" {
		return "", false
	}
	return cfg.Alias + "/" + rest, true
}

// relativeSpecifier computes the "./" or "../" specifier that resolves
// target when imported from a file in fromDir.
func relativeSpecifier(fromDir, target string) string {
	from := splitSegments(fromDir)
	to := splitSegments(target)

	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}

	var parts []string
	for i := common; i < len(from); i++ {
		parts = append(parts, "..")
	}
	if len(parts) == 0 {
		parts = append(parts, ".")
	}
	parts = append(parts, to[common:]...)
	return strings.Join(parts, "/")
}

func splitSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
