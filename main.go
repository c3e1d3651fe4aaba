// image-to-binary converts image files into raw pixel dumps or re-encoded BMPs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"ImageToBinary/config"
	"ImageToBinary/convert"
	"ImageToBinary/imagedecode"
)

const usageText = ` Usage: image-to-binary [-opt] file0, file1, ...

  Available options:
    -a or --alpha        : include alpha value in raw file
    -b or --bmp          : generate a .bmp file
    -h or --help         : print this message
    -n or --no-alpha     : do not include alpha value in raw file
    -r or --raw          : generate a raw binary file which only contains pixel values
    --format NAME        : rgb565, greyscale or bw (the first one given wins)
    --config FILE        : read defaults from a YAML file (default %s)
    --write-config FILE  : save the effective settings as YAML
    --out DIR            : write outputs to DIR instead of next to the inputs
    --width N, --height N: resize before converting (0 keeps the aspect ratio)
    -j N                 : convert N files at once
    -v                   : log header details for every file
    --no-color           : plain output

  Default options: --raw --no-alpha

  Options must come before the file names and apply to every file. Anything
  after the first file name is treated as a file, and an unknown option stops
  the run with exit code 2.
`

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var (
		noAlpha optionalBool
		raw     optionalBool
		format  = formatFlag{warn: stderr}
	)

	fs := flag.NewFlagSet("image-to-binary", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprintf(stderr, usageText, config.DefaultPath) }

	fs.Var(boolSetter{target: &noAlpha, value: false}, "a", "include alpha value in raw file")
	fs.Var(boolSetter{target: &noAlpha, value: false}, "alpha", "include alpha value in raw file")
	fs.Var(boolSetter{target: &noAlpha, value: true}, "n", "do not include alpha value in raw file")
	fs.Var(boolSetter{target: &noAlpha, value: true}, "no-alpha", "do not include alpha value in raw file")
	fs.Var(boolSetter{target: &raw, value: false}, "b", "generate a .bmp file")
	fs.Var(boolSetter{target: &raw, value: false}, "bmp", "generate a .bmp file")
	fs.Var(boolSetter{target: &raw, value: true}, "r", "generate a raw file")
	fs.Var(boolSetter{target: &raw, value: true}, "raw", "generate a raw file")
	fs.Var(&format, "format", "rgb565, greyscale or bw")
	configPath := fs.String("config", config.DefaultPath, "YAML configuration file")
	writeConfig := fs.String("write-config", "", "save the effective configuration to this file")
	outDir := fs.String("out", "", "output directory")
	width := fs.Uint("width", 0, "resize width")
	height := fs.Uint("height", 0, "resize height")
	workers := fs.Int("j", 0, "files converted at once")
	verbose := fs.Bool("v", false, "log header details")
	noColor := fs.Bool("no-color", false, "plain output")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	con := &console{out: stdout, err: stderr, plain: *noColor}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		con.failure("Error in configuration ", *configPath, fmt.Sprintf(": %v\n", err))
		return 1
	}

	// Flags override the configuration file.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if noAlpha.set {
		cfg.NoAlpha = noAlpha.value
	}
	if raw.set {
		cfg.Raw = raw.value
	}
	if format.set {
		cfg.Format = format.opts.Format
	}
	if set["out"] {
		cfg.OutputDir = *outDir
	}
	if set["width"] {
		cfg.Resize.Width = *width
	}
	if set["height"] {
		cfg.Resize.Height = *height
	}
	if set["j"] {
		cfg.Workers = *workers
	}

	cfg, err = config.ValidateAndReform(cfg)
	if err != nil {
		con.failure("Error in configuration ", *configPath, fmt.Sprintf(": %v\n", err))
		return 1
	}

	if *writeConfig != "" {
		if err := config.SaveConfig(*writeConfig, cfg); err != nil {
			con.failure("Error when saving ", *writeConfig, fmt.Sprintf(": %v\n", err))
			return 1
		}
		con.success("Configuration ", *writeConfig, " is saved.\n")
	}

	files := fs.Args()
	if len(files) == 0 {
		if *writeConfig == "" {
			con.warn("Nothing to do!\n")
		}
		return 0
	}

	runner := &convert.Runner{
		Options:        cfg.Options(),
		Decode:         imagedecode.Options{Width: cfg.Resize.Width, Height: cfg.Resize.Height},
		OutputDir:      cfg.OutputDir,
		PixelArraySize: cfg.PixelArraySize,
		Workers:        cfg.Workers,
		Verbose:        *verbose,
	}
	results := runner.Run(files)
	report(con, results)

	if convert.Failed(results) > 0 {
		return 1
	}
	return 0
}

// report prints one line per converted file and a distinct message per error kind.
func report(con *console, results []convert.Result) {
	for _, res := range results {
		for _, w := range res.Warnings {
			con.warn(fmt.Sprintf("Warning: %s: %s\n", res.Input, w))
		}

		switch res.Kind() {
		case "":
			if res.Mode.Raw() {
				con.success("Binary image file ", res.Output, " is generated.\n")
			} else {
				con.success("BMP file ", res.Output, " is generated.\n")
			}
			continue
		case "decode":
			con.failure("Error on ", res.Input, fmt.Sprintf(": %v\n", res.Err))
		case "create":
			con.failure("Error when creating output for ", res.Input, fmt.Sprintf(": %v\n", res.Err))
		case "format":
			con.failure("Unsupported bitmap from ", res.Input, fmt.Sprintf(": %v\n", res.Err))
		default:
			con.failure("Error when converting ", res.Input, fmt.Sprintf(": %v\n", res.Err))
			if res.Output != "" {
				con.info(fmt.Sprintf("Partial output left in %s\n", res.Output))
			}
		}
		con.info("Ignoring file...\n")
	}
}
