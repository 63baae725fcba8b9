package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/api/quadratize"
	"github.com/rmohr/quadratize/pkg/poly"
	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// RelativePath is the location of the config file below the XDG config directories.
const RelativePath = "quadratize/config.yaml"

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

func DefaultConfig() *quadratize.Config {
	return &quadratize.Config{
		Strength: 1.0,
		Format:   FormatYAML,
	}
}

// LoadConfig reads the config file at path. With an empty path the XDG config
// directories are searched, and the defaults are returned if no file exists.
func LoadConfig(path string) (*quadratize.Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(RelativePath)
		if err != nil {
			logrus.Debugf("No config file found, using defaults: %v", err)
			return DefaultConfig(), nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %v", path, err)
	}
	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	logrus.Debugf("Loaded config from %s.", path)
	return config, nil
}

func Validate(config *quadratize.Config) error {
	if config.Vartype != api.Undefined {
		if err := config.Vartype.Validate(); err != nil {
			return err
		}
	}
	switch config.Format {
	case FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q", config.Format)
	}
	return nil
}

// DefaultConfigPath returns where WriteDefaultConfig writes to when no path is given.
func DefaultConfigPath() (string, error) {
	return xdg.ConfigFile(RelativePath)
}

// WriteDefaultConfig writes the defaults to path. Existing files are never overwritten.
func WriteDefaultConfig(path string) error {
	_, err := os.Stat(path)
	if !os.IsNotExist(err) {
		return fmt.Errorf("config file %s already exists", path)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0660)
}

// LoadPolynomialFile reads a polynomial in YAML or JSON notation.
func LoadPolynomialFile(file string) (*quadratize.PolynomialFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ParsePolynomialFile(data)
}

func ParsePolynomialFile(data []byte) (*quadratize.PolynomialFile, error) {
	pf := &quadratize.PolynomialFile{}
	if err := yaml.Unmarshal(data, pf); err != nil {
		return nil, err
	}
	if len(pf.Terms) == 0 {
		return nil, errors.New("polynomial has no terms")
	}
	return pf, nil
}

// ToPolynomial builds the polynomial of the file. The vartype of the file
// wins over the fallback.
func ToPolynomial(pf *quadratize.PolynomialFile, fallback api.Vartype) (*poly.BinaryPolynomial, error) {
	vartype := pf.Vartype
	if vartype == api.Undefined {
		vartype = fallback
	}
	monomials := make([]api.Monomial, 0, len(pf.Terms))
	for _, t := range pf.Terms {
		monomials = append(monomials, api.Monomial{Term: append(api.Term{}, t.Variables...), Bias: t.Bias})
	}
	p, err := poly.New(vartype, monomials...)
	if err != nil {
		return nil, fmt.Errorf("polynomial %s: %w", pf.Name, err)
	}
	return p, nil
}
