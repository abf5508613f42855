package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Tools   ToolsConfig   `json:"tools"`
	Preview PreviewConfig `json:"preview"`
}

type ToolsConfig struct {
	// File Operations
	MaxFileSize int64 `json:"max_file_size"` // Default: 2 * 1024 * 1024 (2MB)

	// Stream application
	MaxStreamCalls int `json:"max_stream_calls"` // Default: 200
}

type PreviewConfig struct {
	// EntryCandidates are probed in order; the first existing file becomes
	// the preview entry point.
	EntryCandidates []string `json:"entry_candidates"`

	// SourceRoot is the prefix replaced by Alias in import map entries.
	SourceRoot string `json:"source_root"` // Default: "/"

	// Alias is the import prefix substituted for SourceRoot (e.g. "@/App.jsx").
	Alias string `json:"alias"` // Default: "@"

	// CDNTemplate resolves bare package specifiers; %s is the package name.
	CDNTemplate string `json:"cdn_template"` // Default: "https://esm.sh/%s"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			MaxFileSize:    2 * 1024 * 1024,
			MaxStreamCalls: 200,
		},
		Preview: PreviewConfig{
			EntryCandidates: []string{"/App.jsx", "/App.tsx", "/index.jsx", "/index.tsx"},
			SourceRoot:      "/",
			Alias:           "@",
			CDNTemplate:     "https://esm.sh/%s",
		},
	}
}
