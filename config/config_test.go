package config

import (
	"os"
	"path/filepath"
	"testing"

	"ImageToBinary/structs"
	"ImageToBinary/utils"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image-to-binary.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
	if !cfg.Raw || !cfg.NoAlpha || cfg.Format != structs.FormatNone || cfg.Workers != 1 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
raw: false
format: Gray
workers: "4"
resize:
  width: 64
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Raw {
		t.Error("raw should be false")
	}
	if !cfg.NoAlpha {
		t.Error("noAlpha should keep its default")
	}
	if cfg.Format != structs.FormatGreyscale {
		t.Errorf("Format = %v, want greyscale", cfg.Format)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Resize.Width != 64 || cfg.Resize.Height != 0 {
		t.Errorf("Resize = %+v", cfg.Resize)
	}
	if cfg.PixelArraySize != utils.DefaultPixelArraySize {
		t.Errorf("PixelArraySize = %q", cfg.PixelArraySize)
	}
	want := structs.ConversionOptions{Raw: false, NoAlpha: true, Format: structs.FormatGreyscale}
	if cfg.Options() != want {
		t.Errorf("Options() = %+v, want %+v", cfg.Options(), want)
	}
}

func TestLoadConfigRejectsUnknownFormat(t *testing.T) {
	if _, err := LoadConfig(writeFile(t, "format: sepia\n")); err == nil {
		t.Error("LoadConfig accepted an unknown format")
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	if _, err := LoadConfig(writeFile(t, "raw: [\n")); err == nil {
		t.Error("LoadConfig accepted malformed YAML")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Format = structs.FormatBlackWhite
	cfg.OutputDir = "out"
	cfg.Resize = Resize{Width: 32, Height: 16}

	path := filepath.Join(t.TempDir(), "saved.yml")
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestValidateAndReform(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0
	cfg.PixelArraySize = "..."
	got, err := ValidateAndReform(cfg)
	if err != nil {
		t.Fatalf("ValidateAndReform failed: %v", err)
	}
	if got.Workers != 1 {
		t.Errorf("Workers = %d, want 1", got.Workers)
	}
	if got.PixelArraySize != utils.DefaultPixelArraySize {
		t.Errorf("PixelArraySize = %q, want default", got.PixelArraySize)
	}

	cfg.Workers = 1000
	got, _ = ValidateAndReform(cfg)
	if got.Workers != MaxWorkers {
		t.Errorf("Workers = %d, want %d", got.Workers, MaxWorkers)
	}
}

func TestValidateRejectsBadExpression(t *testing.T) {
	cfg := Default()
	cfg.PixelArraySize = "Width * * Height"
	if _, err := ValidateAndReform(cfg); err == nil {
		t.Error("ValidateAndReform accepted a malformed expression")
	}

	cfg.PixelArraySize = ""
	if _, err := ValidateAndReform(cfg); err != nil {
		t.Errorf("empty expression should disable the check, got %v", err)
	}
}

func TestLoadConfigNumericFormat(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "format: 565\n"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Format != structs.FormatRGB565 {
		t.Errorf("Format = %v, want rgb565", cfg.Format)
	}

	// Enum numbers are not format names.
	for _, content := range []string{"format: 2\n", "format: 9\n", "format: [bw]\n"} {
		if cfg, err := LoadConfig(writeFile(t, content)); err == nil {
			t.Errorf("%q: LoadConfig accepted it as %v", content, cfg.Format)
		}
	}
}

func TestValidateRejectsOutOfRangeFormat(t *testing.T) {
	cfg := Default()
	cfg.Format = structs.Format(9)
	if _, err := ValidateAndReform(cfg); err == nil {
		t.Error("ValidateAndReform accepted Format(9)")
	}

	cfg.Format = structs.FormatBlackWhite
	if _, err := ValidateAndReform(cfg); err != nil {
		t.Errorf("ValidateAndReform rejected bw: %v", err)
	}
}
