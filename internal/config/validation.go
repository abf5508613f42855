package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Tools validation
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.MaxStreamCalls < 1 {
		errs = append(errs, "tools.max_stream_calls must be >= 1")
	}

	// Preview validation
	if len(c.Preview.EntryCandidates) == 0 {
		errs = append(errs, "preview.entry_candidates must not be empty")
	}
	for _, candidate := range c.Preview.EntryCandidates {
		if !strings.HasPrefix(candidate, "/") {
			errs = append(errs, fmt.Sprintf("preview.entry_candidates entry %q must be absolute", candidate))
		}
	}
	if !strings.HasPrefix(c.Preview.SourceRoot, "/") {
		errs = append(errs, "preview.source_root must be absolute")
	}
	if c.Preview.Alias == "" {
		errs = append(errs, "preview.alias must not be empty")
	}
	if strings.Contains(c.Preview.Alias, "/") {
		errs = append(errs, "preview.alias must not contain slashes")
	}
	if !strings.Contains(c.Preview.CDNTemplate, "%s") {
		errs = append(errs, "preview.cdn_template must contain a %s placeholder")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
