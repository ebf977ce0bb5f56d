// Command terragen is the CLI driver for the generation pipeline: a
// single "generate" verb accepting either a config file or inline flags
// (spec §6), grounded on the teacher's flag/os.Getenv-based main.go style
// (no cobra/viper anywhere in the corpus).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/logging"
	"github.com/Hemifuture/terragen/internal/pipeline"
)

func main() {
	logging.InitLogger()

	if len(os.Args) < 2 || os.Args[1] != "generate" {
		fmt.Fprintln(os.Stderr, "usage: terragen generate [--config path.json] [flags]")
		os.Exit(2)
	}

	os.Exit(runGenerate(os.Args[2:]))
}

func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a GenerationConfig JSON file")
	seed := fs.Uint64("seed", 1, "master seed")
	width := fs.Uint("width", 1000, "map width")
	height := fs.Uint("height", 1000, "map height")
	spacing := fs.Uint("cell-spacing", 20, "lattice cell spacing")
	seaLevel := fs.Uint("sea-level", 20, "sea level threshold")
	elevationMode := fs.String("elevation-mode", string(config.ElevationTemplate), "\"template\" or \"plates\"")
	templateName := fs.String("template-name", "continents", "built-in template name (template mode)")
	out := fs.String("out", "", "write the resulting state as JSON to this path (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, *seed, uint32(*width), uint32(*height), uint32(*spacing), uint8(*seaLevel), *elevationMode, *templateName)
	if err != nil {
		return reportError(err)
	}

	state, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return reportError(err)
	}

	return writeResult(state, *out)
}

func loadConfig(path string, seed uint64, width, height, spacing uint32, seaLevel uint8, elevationMode, templateName string) (config.GenerationConfig, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	cfg := config.Default()
	cfg.Seed = seed
	cfg.Width = width
	cfg.Height = height
	cfg.CellSpacing = spacing
	cfg.SeaLevel = seaLevel
	cfg.ElevationMode = config.ElevationMode(elevationMode)
	cfg.TemplateName = templateName

	if err := cfg.Validate(); err != nil {
		return config.GenerationConfig{}, err
	}
	return cfg, nil
}

func writeResult(state interface{}, out string) int {
	b, err := json.Marshal(state)
	if err != nil {
		fmt.Fprintln(os.Stderr, "encoding result:", err)
		return 1
	}

	if out == "" {
		fmt.Println(string(b))
		return 0
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "writing result:", err)
		return 1
	}
	return 0
}

func reportError(err error) int {
	if diag, ok := apperr.ToDiagnostic(err); ok {
		fmt.Fprintln(os.Stderr, diag.Message)
		return diag.Kind.ExitCode()
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
