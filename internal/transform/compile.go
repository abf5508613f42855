package transform

import (
	"encoding/base64"
	"path"

	"github.com/evanw/esbuild/pkg/api"
)

// sourceLoaders maps recognized extensions to compiler loaders, in
// resolution-priority order (earlier wins when an extension-less
// specifier is ambiguous).
var sourceExtensions = []string{".jsx", ".tsx", ".js", ".ts"}

var sourceLoaders = map[string]api.Loader{
	".js":  api.LoaderJS,
	".jsx": api.LoaderJSX,
	".ts":  api.LoaderTS,
	".tsx": api.LoaderTSX,
}

// IsSource reports whether the file at p has a compilable extension.
func IsSource(p string) bool {
	_, ok := sourceLoaders[path.Ext(p)]
	return ok
}

// extPriority ranks a source extension; lower is preferred.
func extPriority(p string) int {
	ext := path.Ext(p)
	for i, candidate := range sourceExtensions {
		if ext == candidate {
			return i
		}
	}
	return len(sourceExtensions)
}

// compileFile transforms one source file into browser-executable module
// code. Syntax errors come back as a CompileError value.
func compileFile(filePath, source string) (string, *CompileError) {
	result := api.Transform(source, api.TransformOptions{
		Loader:     sourceLoaders[path.Ext(filePath)],
		Format:     api.FormatESModule,
		JSX:        api.JSXAutomatic,
		Sourcefile: filePath,
		Target:     api.ES2020,
	})

	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		compileErr := &CompileError{
			Path:    filePath,
			Message: msg.Text,
		}
		if msg.Location != nil {
			compileErr.Line = msg.Location.Line
			compileErr.Column = msg.Location.Column
		}
		return "", compileErr
	}

	return string(result.Code), nil
}

// moduleURL encodes compiled code as a data: URL loadable by the
// browser's native module loader.
func moduleURL(code string) string {
	return "data:text/javascript;base64," + base64.StdEncoding.EncodeToString([]byte(code))
}
