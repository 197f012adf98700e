package resolver

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// configFile is a read-only snapshot of an INI file. Keys before the first
// section header belong to the default section.
type configFile struct {
	file *ini.File
}

// readConfigFile reads path once and parses it. A missing file is an error,
// an empty file is not.
func readConfigFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, data)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: fmt.Errorf("parse INI: %w", err)}
	}
	return &configFile{file: file}, nil
}

// lookup returns the value of key in section. An empty section name means
// the default section.
func (c *configFile) lookup(section, key string) (string, bool) {
	if section == "" {
		section = ini.DefaultSection
	}
	sec, err := c.file.GetSection(section)
	if err != nil {
		return "", false
	}
	if !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}
