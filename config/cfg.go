package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	"golang.org/x/text/encoding/ianaindex"
	yaml "gopkg.in/yaml.v3"

	"cssnest/common"
	"cssnest/match"
	"cssnest/nesting"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	NestingRuleConfig struct {
		Enabled                 bool                `yaml:"enabled"`
		Severity                common.Severity     `yaml:"severity" validate:"gte=0"`
		MaxDepth                int                 `yaml:"max_depth" validate:"gte=0"`
		Ignore                  []common.IgnoreKind `yaml:"ignore" validate:"dive,gte=0"`
		IgnoredConditionalNames []string            `yaml:"ignored_conditional_names" validate:"dive,required"`
		IgnoredPseudoClasses    []string            `yaml:"ignored_pseudo_classes" validate:"dive,required"`
	}

	RulesConfig struct {
		MaxNestingDepth NestingRuleConfig `yaml:"max_nesting_depth"`
	}

	SourcesConfig struct {
		Extensions []string `yaml:"extensions" validate:"min=1,dive,startswith=."`
		Archives   bool     `yaml:"archives"`
		Charset    string   `yaml:"charset"`
		Jobs       int      `yaml:"jobs" validate:"gte=0"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Rules     RulesConfig    `yaml:"rules"`
		Sources   SourcesConfig  `yaml:"sources"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Options converts rule configuration to rule options compiling all matchers.
func (conf *NestingRuleConfig) Options() (nesting.Options, error) {
	names, err := match.ParseList(conf.IgnoredConditionalNames)
	if err != nil {
		return nesting.Options{}, fmt.Errorf("ignored_conditional_names: %w", err)
	}
	pseudo, err := match.ParseList(conf.IgnoredPseudoClasses)
	if err != nil {
		return nesting.Options{}, fmt.Errorf("ignored_pseudo_classes: %w", err)
	}
	return nesting.Options{
		MaxDepth:                conf.MaxDepth,
		Ignore:                  conf.Ignore,
		IgnoredConditionalNames: names,
		IgnoredPseudoClasses:    pseudo,
	}, nil
}

// checkConfig catches values validator tags cannot express: patterns which do
// not compile and unknown charsets.
func checkConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	rule := cfg.Rules.MaxNestingDepth
	for i, v := range rule.IgnoredConditionalNames {
		if _, err := match.Parse(v); err != nil {
			sl.ReportError(v, fmt.Sprintf("IgnoredConditionalNames[%d]", i), "ignored_conditional_names", "pattern", v)
		}
	}
	for i, v := range rule.IgnoredPseudoClasses {
		if _, err := match.Parse(v); err != nil {
			sl.ReportError(v, fmt.Sprintf("IgnoredPseudoClasses[%d]", i), "ignored_pseudo_classes", "pattern", v)
		}
	}
	if cs := cfg.Sources.Charset; cs != "" {
		if enc, err := ianaindex.IANA.Encoding(cs); err != nil || enc == nil {
			sl.ReportError(cs, "Charset", "charset", "charset", cs)
		}
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Unknown options are errors, so yaml.Unmarshal cannot be used directly
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
