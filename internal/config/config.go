// Package config loads the optional winnow.toml defaults file. Command-line
// flags always override file values; the file exists so recurring jobs can
// pin column names, window size, and a dictionary path without repeating
// flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given.
const DefaultFileName = "winnow.toml"

// File mirrors the winnow.toml structure.
type File struct {
	Columns    Columns    `toml:"columns"`
	Classify   Classify   `toml:"classify"`
	Dictionary Dictionary `toml:"dictionary"`
}

// Columns names the input columns recurring jobs rely on.
type Columns struct {
	ID          string   `toml:"id"`
	Text        string   `toml:"text"`
	Classifiers []string `toml:"classifiers"`
}

// Classify holds classification defaults.
type Classify struct {
	Window    int  `toml:"window"`
	Hashtags  bool `toml:"hashtags"`
	WholeWord bool `toml:"whole_word"`
}

// Dictionary points at a dictionary document.
type Dictionary struct {
	Path string `toml:"path"`
}

// Load parses a winnow.toml file. Unknown keys are rejected with the key
// path in the error, so typos fail loudly instead of being ignored.
func Load(path string) (*File, error) {
	var cfg File
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown key(s): %s", path, strings.Join(keys, ", "))
	}

	if cfg.Classify.Window < 0 {
		return nil, fmt.Errorf("%s: [classify].window must be non-negative", path)
	}

	return &cfg, nil
}

// LoadDefault loads winnow.toml from the working directory if it exists.
// A missing file is not an error; it returns a zero-value File.
func LoadDefault() (*File, error) {
	if _, err := os.Stat(DefaultFileName); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to stat %q: %w", DefaultFileName, err)
	}
	return Load(DefaultFileName)
}
