package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"ImageToBinary/structs"
	"ImageToBinary/utils"
)

// DefaultPath is looked up in the working directory when -config is not given.
const DefaultPath = "image-to-binary.yml"

type Resize struct {
	Width  uint `yaml:"width" mapstructure:"width"`
	Height uint `yaml:"height" mapstructure:"height"`
}

// Config holds the settings a run starts from before command line flags are applied.
type Config struct {
	Raw            bool           `yaml:"raw" mapstructure:"raw"`
	NoAlpha        bool           `yaml:"noAlpha" mapstructure:"noAlpha"`
	Format         structs.Format `yaml:"format" mapstructure:"format"`
	OutputDir      string         `yaml:"outputDir" mapstructure:"outputDir"`
	Workers        int            `yaml:"workers" mapstructure:"workers"`
	Resize         Resize         `yaml:"resize" mapstructure:"resize"`
	PixelArraySize string         `yaml:"pixelArraySize" mapstructure:"pixelArraySize"`
}

func Default() Config {
	opts := structs.DefaultOptions()
	return Config{
		Raw:            opts.Raw,
		NoAlpha:        opts.NoAlpha,
		Workers:        1,
		PixelArraySize: utils.DefaultPixelArraySize,
	}
}

// Options returns the conversion options part of c.
func (c Config) Options() structs.ConversionOptions {
	return structs.ConversionOptions{NoAlpha: c.NoAlpha, Raw: c.Raw, Format: c.Format}
}

// formatHook turns format names into structs.Format during decoding. YAML
// reads "format: 565" as a number, so every scalar goes through ParseFormat
// and enum values never leak in as bare integers.
func formatHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(structs.FormatNone) {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return nil, fmt.Errorf("format must be a name, got %v", data)
	}
	return structs.ParseFormat(fmt.Sprint(data))
}

// Decode overlays the values in raw onto the defaults.
func Decode(raw map[string]interface{}) (Config, error) {
	cfg := Default()
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       formatHook,
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, fmt.Errorf("failed to decode configuration: %w", err)
	}
	sort.Strings(md.Unused)
	for _, key := range md.Unused {
		log.Printf("Warning: unknown configuration key '%s' ignored.", key)
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file. A missing file yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read configuration file '%s': %w", configPath, err)
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(configData, &raw); err != nil {
		yamlErr, ok := err.(*yaml.TypeError)
		if ok {
			for _, msg := range yamlErr.Errors {
				log.Printf("YAML unmarshal error in %s: %s", configPath, msg)
			}
		}
		return Config{}, fmt.Errorf("failed to parse configuration file '%s': %w", configPath, err)
	}

	cfg, err := Decode(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML.
func SaveConfig(configPath string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file '%s': %w", configPath, err)
	}
	return nil
}
