package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/pkg/filesystem"
	"github.com/doeshing/toolgate/internal/ports"
)

// Classifier implements the RiskClassifier port over two substring tables.
type Classifier struct {
	commands []compiledRule
	paths    []compiledRule
}

type compiledRule struct {
	match string
	tier  domain.RiskTier
	rule  domain.PatternRule
}

// RulesFile is the rules document schema (YAML or TOML). Entries are added to
// the built-in tables; they cannot remove built-in entries.
type RulesFile struct {
	Rules struct {
		CommandPatterns []domain.PatternRule `yaml:"command_patterns" toml:"command_patterns"`
		ProtectedPaths  []domain.PatternRule `yaml:"protected_paths" toml:"protected_paths"`
	} `yaml:"rules" toml:"rules"`
}

// NewDefaultClassifier returns a classifier over the built-in tables only.
func NewDefaultClassifier() *Classifier {
	return newClassifier(commandPatterns, protectedPaths)
}

// NewClassifier loads the rules file at path on top of the built-in tables.
// A missing file is not an error.
func NewClassifier(path string) (*Classifier, error) {
	doc, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	commands := append(DefaultCommandPatterns(), doc.Rules.CommandPatterns...)
	paths := append(DefaultProtectedPaths(), doc.Rules.ProtectedPaths...)
	return newClassifier(commands, paths), nil
}

func newClassifier(commands, paths []domain.PatternRule) *Classifier {
	c := &Classifier{}
	for _, rule := range commands {
		if rule.Pattern == "" {
			continue
		}
		c.commands = append(c.commands, compiledRule{
			match: strings.ToLower(rule.Pattern),
			tier:  domain.ParseRiskTier(rule.Tier),
			rule:  rule,
		})
	}
	for _, rule := range paths {
		if rule.Pattern == "" {
			continue
		}
		c.paths = append(c.paths, compiledRule{
			match: strings.ToLower(NormalizePath(rule.Pattern)),
			tier:  domain.ParseRiskTier(rule.Tier),
			rule:  rule,
		})
	}
	return c
}

// ClassifyCommand implements ports.RiskClassifier.
func (c *Classifier) ClassifyCommand(commandLine string) domain.RiskAssessment {
	return evaluate(c.commands, strings.ToLower(commandLine))
}

// ClassifyPath implements ports.RiskClassifier. Matching ignores case, and a
// trailing separator is added so that a protected directory itself is caught.
func (c *Classifier) ClassifyPath(path string) domain.RiskAssessment {
	normalized := strings.ToLower(NormalizePath(path))
	if !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return evaluate(c.paths, normalized)
}

// CommandRules returns the effective command table.
func (c *Classifier) CommandRules() []domain.PatternRule {
	return rulesOf(c.commands)
}

// PathRules returns the effective path table.
func (c *Classifier) PathRules() []domain.PatternRule {
	return rulesOf(c.paths)
}

func evaluate(rules []compiledRule, subject string) domain.RiskAssessment {
	assessment := domain.RiskAssessment{Tier: domain.RiskNormal}
	for _, r := range rules {
		if !strings.Contains(subject, r.match) {
			continue
		}
		assessment.Tier = domain.MaxTier(assessment.Tier, r.tier)
		assessment.MatchedRules = append(assessment.MatchedRules, r.rule.Pattern)
		if r.rule.Reason != "" {
			assessment.Reasons = append(assessment.Reasons, r.rule.Reason)
		}
	}
	return assessment
}

func rulesOf(compiled []compiledRule) []domain.PatternRule {
	out := make([]domain.PatternRule, 0, len(compiled))
	for _, r := range compiled {
		out = append(out, r.rule)
	}
	return out
}

// NormalizePath converts platform separators to a single '/' form.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

var defaultClassifier = NewDefaultClassifier()

// ClassifyCommand classifies a command line against the built-in table.
func ClassifyCommand(commandLine string) domain.RiskTier {
	return defaultClassifier.ClassifyCommand(commandLine).Tier
}

// ClassifyPath classifies a path against the built-in table.
func ClassifyPath(path string) domain.RiskTier {
	return defaultClassifier.ClassifyPath(path).Tier
}

// LoadRules reads a rules document. The format is chosen by extension:
// ".toml" uses TOML, anything else YAML.
func LoadRules(path string) (RulesFile, error) {
	var doc RulesFile
	path = filesystem.ExpandPath(path)
	if path == "" {
		return doc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return RulesFile{}, fmt.Errorf("read rules file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return RulesFile{}, fmt.Errorf("parse rules file %s: %w", path, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RulesFile{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return doc, nil
}

var _ ports.RiskClassifier = (*Classifier)(nil)
