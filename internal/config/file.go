package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Settings is the content of an HCL settings file:
//
//	separator  = "/"
//	max_depth  = 256
//	include    = ["**/*.mov", "**/*.mxf"]
//	exclude    = ["**/.trash/**"]
//	log_level  = "info"
//	log_format = "json"
//	log_file   = "/var/log/ltfs2efu.log"
//
// Every attribute is optional. Values given on the command line win.
type Settings struct {
	Separator *string  `hcl:"separator,optional"`
	MaxDepth  *int     `hcl:"max_depth,optional"`
	Include   []string `hcl:"include,optional"`
	Exclude   []string `hcl:"exclude,optional"`
	LogLevel  *string  `hcl:"log_level,optional"`
	LogFormat *string  `hcl:"log_format,optional"`
	LogFile   *string  `hcl:"log_file,optional"`
}

// LoadSettings parses and decodes the settings file at filePath.
func LoadSettings(filePath string) (*Settings, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %s", filePath, diags.Error()) //nolint:err113 // HCL diagnostics carry the detail
	}

	var settings Settings

	diags = gohcl.DecodeBody(file.Body, nil, &settings)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %s", filePath, diags.Error()) //nolint:err113 // HCL diagnostics carry the detail
	}

	return &settings, nil
}

// ApplyTo copies settings into cfg wherever the command line left a value unset.
func (s *Settings) ApplyTo(cfg *Config) {
	setString(&cfg.Separator, s.Separator)
	setString(&cfg.LogLevel, s.LogLevel)
	setString(&cfg.LogFormat, s.LogFormat)
	setString(&cfg.LogFile, s.LogFile)

	if cfg.MaxDepth == 0 && s.MaxDepth != nil {
		cfg.MaxDepth = *s.MaxDepth
	}

	if len(cfg.Include) == 0 {
		cfg.Include = s.Include
	}

	if len(cfg.Exclude) == 0 {
		cfg.Exclude = s.Exclude
	}
}

func setString(dst *string, src *string) {
	if *dst == "" && src != nil {
		*dst = *src
	}
}
