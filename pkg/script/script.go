package script

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/chartify/pkg/errors"
	"github.com/arthur-debert/chartify/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a script
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Newf(errors.ErrScriptParse, "unsupported script extension %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// Script is an ordered list of steps
type Script struct {
	Steps []Step `yaml:"steps" toml:"steps"`

	// BaseDir resolves relative data files
	BaseDir string `yaml:"-" toml:"-"`
}

// Step applies one action to every element its selector matches
type Step struct {
	Select   string                 `yaml:"select" toml:"select"`
	Action   string                 `yaml:"action,omitempty" toml:"action,omitempty"`
	Type     string                 `yaml:"type,omitempty" toml:"type,omitempty"`
	Data     map[string]interface{} `yaml:"data,omitempty" toml:"data,omitempty"`
	DataFile string                 `yaml:"data_file,omitempty" toml:"data_file,omitempty"`
	Options  map[string]interface{} `yaml:"options,omitempty" toml:"options,omitempty"`
}

// Load reads a script, choosing the decoder by extension
func Load(path string) (*Script, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "failed to read script %s", path)
	}
	s, err := Parse(content, format)
	if err != nil {
		return nil, err
	}
	s.BaseDir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates a script
func Parse(content []byte, format Format) (*Script, error) {
	var s Script
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(content, &s)
	case FormatTOML:
		err = toml.Unmarshal(content, &s)
	default:
		return nil, errors.Newf(errors.ErrScriptParse, "unknown script format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "failed to decode %s script", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every step can be turned into an action
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return errors.Wrapf(err, errors.ErrScriptParse, "step %d", i+1)
		}
	}
	return nil
}

func (st Step) validate() error {
	if st.Select == "" && !st.global() {
		return errors.New(errors.ErrScriptParse, "select is required")
	}
	if st.Data != nil && st.DataFile != "" {
		return errors.New(errors.ErrScriptParse, "data and data_file are mutually exclusive")
	}
	if st.Data != nil {
		if _, err := DecodeDataset(st.Data); err != nil {
			return err
		}
	}
	return nil
}

// global reports whether the step acts on the registry rather than elements
func (st Step) global() bool {
	return strings.TrimSpace(st.Action) == types.TokenGetInstances
}

// Spec builds the chart spec of the step. Relative data files resolve
// against baseDir.
func (st Step) Spec(baseDir string) (types.Spec, error) {
	spec := types.Spec{Type: st.Type}

	switch {
	case st.Data != nil:
		data, err := DecodeDataset(st.Data)
		if err != nil {
			return types.Spec{}, err
		}
		spec.Data = types.Literal(data)
	case st.DataFile != "":
		path := st.DataFile
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		spec.Data = types.Supplier(datasetSupplier(path))
	}

	if st.Options != nil {
		spec.Options = types.Literal(types.Options(st.Options))
	}
	return spec, nil
}

// ToAction resolves the step's token against its spec
func (st Step) ToAction(baseDir string) (types.Action, error) {
	spec, err := st.Spec(baseDir)
	if err != nil {
		return nil, err
	}
	return types.ParseAction(st.Action, spec), nil
}

// DecodeDataset converts decoded series into a Dataset. Any numeric
// encoding is accepted, numeric strings included.
func DecodeDataset(raw map[string]interface{}) (types.Dataset, error) {
	var data types.Dataset
	if err := mapstructure.WeakDecode(raw, &data); err != nil {
		return nil, errors.Wrap(err, errors.ErrScriptParse, "data must map series names to lists of numbers")
	}
	for series, values := range data {
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Newf(errors.ErrScriptParse, "series %q has a non-finite value at position %d", series, i)
			}
		}
	}
	return data, nil
}

// LoadDataset reads a YAML dataset file
func LoadDataset(path string) (types.Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "failed to read data file %s", path)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "failed to decode data file %s", path)
	}
	data, err := DecodeDataset(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "invalid data file %s", path)
	}
	return data, nil
}

// datasetSupplier defers reading a data file until the spec is resolved.
// Suppliers cannot return errors, so a failed read panics with the coded
// error; the controller's batch isolation turns it back into a result error.
func datasetSupplier(path string) func() types.Dataset {
	return func() types.Dataset {
		data, err := LoadDataset(path)
		if err != nil {
			panic(err)
		}
		return data
	}
}
