/*package config reads the run files which describe a halo model evaluation:
the cosmology, the halo model configuration and the logging mode. Files may
be written in TOML or YAML.
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/halo"
	"github.com/phil-mansfield/axionhm/logging"
	"github.com/phil-mansfield/axionhm/version"
)

// Format is the encoding of a run file.
type Format int

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ErrFormat is returned for files whose format can't be determined.
var ErrFormat = errors.New("config: unknown file format")

// File is the contents of a run file.
type File struct {
	// Version is the source version the file was written for.
	Version string `toml:"version" yaml:"version"`
	// Logging is the name of a logging.Flag.
	Logging   string          `toml:"logging" yaml:"logging"`
	Cosmology cosmo.Cosmology `toml:"cosmology" yaml:"cosmology"`
	// HaloModel starts from halo.DefaultConfig, so keys missing from the
	// file keep their default values.
	HaloModel halo.Config `toml:"halo_model" yaml:"halo_model"`
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("%w: I don't know how to read '%s', "+
		"it needs a .toml, .yaml or .yml extension", ErrFormat, path)
}

// Load reads and validates the run file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w (file '%s')", err, path)
	}
	return f, nil
}

// Parse decodes and validates a run file held in memory. format may not be
// FormatAuto.
func Parse(data []byte, format Format) (*File, error) {
	f := &File{HaloModel: halo.DefaultConfig()}

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), f); err != nil {
			return nil, fmt.Errorf("config: I couldn't parse the TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("config: I couldn't parse the YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, format)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks that every field of the file is usable.
func (f *File) Validate() error {
	if f.Version == "" {
		return fmt.Errorf("config: the 'version' variable isn't set")
	}
	if err := version.Compatible(f.Version); err != nil {
		return fmt.Errorf("config: the 'version' variable is set to '%s', "+
			"but %w", f.Version, err)
	}
	if _, err := f.LogFlag(); err != nil {
		return fmt.Errorf("config: the 'logging' variable: %w", err)
	}
	if err := f.Cosmology.Validate(); err != nil {
		return fmt.Errorf("config: [cosmology]: %w", err)
	}
	if err := f.HaloModel.Validate(); err != nil {
		return fmt.Errorf("config: [halo_model]: %w", err)
	}
	return nil
}

// LogFlag returns the logging mode requested by the file. Callers set
// logging.Mode with it.
func (f *File) LogFlag() (logging.Flag, error) {
	return logging.ParseFlag(f.Logging)
}

// Example returns the text of an example run file in the given format.
func Example(format Format) (string, error) {
	f := &File{
		Version:   version.SourceVersion,
		Logging:   logging.Nil.String(),
		Cosmology: cosmo.Cosmology{
			OmegaM0: 0.3, OmegaAx0: 0.03, OmegaDB0: 0.27, OmegaL0: 0.7,
			H: 0.67, Z: 0, MAx: 1e-24,
		},
		HaloModel: halo.DefaultConfig(),
	}

	buf := &bytes.Buffer{}
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(buf).Encode(f); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(buf)
		if err := enc.Encode(f); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrFormat, format)
	}
	return buf.String(), nil
}
