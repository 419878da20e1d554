package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultRulesYAML is the starter rules file written by "rules init".
//
//go:embed defaults/rules.yaml
var DefaultRulesYAML []byte
