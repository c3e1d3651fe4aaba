package config

import (
	"fmt"
	"log"
	"strings"

	"ImageToBinary/structs"
	"ImageToBinary/utils"
)

// MaxWorkers caps the number of files converted at once.
const MaxWorkers = 64

// ValidateAndReform checks cfg, fixes what can be fixed with a warning, and
// fails if any critical error remains.
func ValidateAndReform(cfg Config) (Config, error) {
	reformationsMade := 0
	validationErrors := 0

	if cfg.Workers < 1 {
		log.Printf("Warning: Reforming config: workers %d is not positive. Using 1.", cfg.Workers)
		cfg.Workers = 1
		reformationsMade++
	} else if cfg.Workers > MaxWorkers {
		log.Printf("Warning: Reforming config: workers %d exceeds %d. Using %d.", cfg.Workers, MaxWorkers, MaxWorkers)
		cfg.Workers = MaxWorkers
		reformationsMade++
	}

	if !cfg.Format.Valid() {
		log.Printf("ERROR: Validation error: format %d is not one of rgb565, greyscale or bw.", int(cfg.Format))
		validationErrors++
	}

	if cfg.Format == structs.FormatRGB565 && !cfg.Raw {
		log.Printf("Info: rgb565 output is always raw; the raw setting is ignored.")
	}

	if (cfg.Resize.Width == 0) != (cfg.Resize.Height == 0) {
		log.Printf("Info: resize %dx%d keeps the aspect ratio for the zero dimension.", cfg.Resize.Width, cfg.Resize.Height)
	}

	if strings.TrimSpace(cfg.PixelArraySize) == "..." {
		log.Printf("Warning: Reforming config: pixelArraySize had placeholder '...'. Using the default expression.")
		cfg.PixelArraySize = utils.DefaultPixelArraySize
		reformationsMade++
	}
	if strings.TrimSpace(cfg.PixelArraySize) != "" {
		if _, err := utils.CompileExpression(cfg.PixelArraySize); err != nil {
			log.Printf("ERROR: Validation error: pixelArraySize '%s' is not a valid expression: %v", cfg.PixelArraySize, err)
			validationErrors++
		}
	}

	if validationErrors > 0 {
		return cfg, fmt.Errorf("found %d critical validation error(s) in configuration", validationErrors)
	}
	if reformationsMade > 0 {
		log.Printf("Made %d reformation(s) to the configuration.", reformationsMade)
	}
	return cfg, nil
}
