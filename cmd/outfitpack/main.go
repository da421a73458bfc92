// Command outfitpack builds a character outfit from a rig and writes its
// repacked single-page atlas.
//
// The rig is read from a JSON description (-rig) referencing a TexturePacker
// atlas (-atlas) and its page images (-pages, PNG/JPEG/TGA), or the built-in
// demo rig is used (-demo). The outfit comes from a saved preset (-preset,
// read from the SQLite file given by -presets) and/or an outfit script
// (-script). The result is repacked and written to -out as <label>.webp (or
// .png) plus <label>.json.
//
// Every flag defaults to an OUTFIT_* environment variable.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/phanxgames/outfit"
	"github.com/phanxgames/outfit/internal/envconfig"
	"github.com/phanxgames/outfit/storage/sqlite"
)

type config struct {
	Rig     string  `env:"OUTFIT_RIG"`
	Atlas   string  `env:"OUTFIT_ATLAS"`
	Pages   string  `env:"OUTFIT_PAGES"`
	Demo    bool    `env:"OUTFIT_DEMO"`
	Presets string  `env:"OUTFIT_PRESETS"`
	Preset  int     `env:"OUTFIT_PRESET" envDefault:"-1"`
	Script  string  `env:"OUTFIT_SCRIPT"`
	Out     string  `env:"OUTFIT_OUT" envDefault:"out"`
	Label   string  `env:"OUTFIT_LABEL" envDefault:"outfit"`
	Format  string  `env:"OUTFIT_FORMAT" envDefault:"webp"`
	MaxSize int     `env:"OUTFIT_MAX_SIZE" envDefault:"2048"`
	Padding int     `env:"OUTFIT_PADDING" envDefault:"2"`
	Scale   float64 `env:"OUTFIT_SCALE" envDefault:"1"`
	Debug   bool    `env:"OUTFIT_DEBUG"`
}

func main() {
	var cfg config
	if err := envconfig.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	flag.StringVar(&cfg.Rig, "rig", cfg.Rig, "rig JSON file")
	flag.StringVar(&cfg.Atlas, "atlas", cfg.Atlas, "TexturePacker atlas JSON file")
	flag.StringVar(&cfg.Pages, "pages", cfg.Pages, "comma-separated atlas page images")
	flag.BoolVar(&cfg.Demo, "demo", cfg.Demo, "use the built-in demo rig")
	flag.StringVar(&cfg.Presets, "presets", cfg.Presets, "SQLite preset database")
	flag.IntVar(&cfg.Preset, "preset", cfg.Preset, "preset slot to apply (-1 for none)")
	flag.StringVar(&cfg.Script, "script", cfg.Script, "outfit script JSON file")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "output directory")
	flag.StringVar(&cfg.Label, "label", cfg.Label, "output file name")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "page format: webp or png")
	flag.IntVar(&cfg.MaxSize, "max-size", cfg.MaxSize, "maximum page width and height")
	flag.IntVar(&cfg.Padding, "padding", cfg.Padding, "pixels between packed images (negative for none)")
	flag.Float64Var(&cfg.Scale, "scale", cfg.Scale, "resample factor for packed images")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log warnings and refresh stats")
	flag.Parse()

	if err := run(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config) error {
	outfit.SetDebug(cfg.Debug)
	format, err := outfit.ParseImageFormat(cfg.Format)
	if err != nil {
		return err
	}

	data, err := loadRig(cfg)
	if err != nil {
		return err
	}
	packer := &outfit.ShelfPacker{Options: outfit.PackOptions{
		MaxSize: cfg.MaxSize, Padding: cfg.Padding, Scale: cfg.Scale, SkinName: cfg.Label,
	}}
	var base *outfit.Material
	if len(data.Materials) > 0 {
		base = data.Materials[0]
	}
	c := outfit.NewCharacter(outfit.NewSkeleton(data), outfit.Options{Packer: packer, BaseMaterial: base})
	c.Initialize()
	defer c.Dispose()

	presets := outfit.NewPresetStore()
	var db *sqlite.Store
	if cfg.Presets != "" {
		db, err = sqlite.Open(cfg.Presets)
		if err != nil {
			return fmt.Errorf("open presets: %w", err)
		}
		defer db.Close()
		if err := db.LoadInto(ctx, presets); err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
	}
	if cfg.Preset >= 0 && !outfit.LoadPreset(presets, c, cfg.Preset) {
		return fmt.Errorf("no preset in slot %d", cfg.Preset)
	}

	if cfg.Script != "" {
		raw, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := outfit.LoadScript(raw)
		if err != nil {
			return err
		}
		script.OutputDir = cfg.Out
		script.Format = format
		if err := script.Run(c, presets); err != nil {
			return err
		}
		if db != nil {
			if err := db.ReplaceAll(ctx, presets); err != nil {
				return fmt.Errorf("save presets: %w", err)
			}
		}
	}

	before := c.DrawCalls()
	if err := c.OptimizeAtlas(); err != nil {
		return err
	}
	path, err := outfit.ExportAtlas(c, cfg.Out, cfg.Label, format)
	if err != nil {
		return err
	}
	mat := c.Material()
	fmt.Printf("%s: %dx%d, %d parts, draw calls %d -> %d\n",
		path, mat.Width(), mat.Height(), len(c.Composite().Parts), before, c.DrawCalls())
	return nil
}

func loadRig(cfg config) (*outfit.SkeletonData, error) {
	if cfg.Demo {
		data, _ := outfit.DemoSkeletonData()
		return data, nil
	}
	if cfg.Rig == "" || cfg.Atlas == "" {
		return nil, fmt.Errorf("-rig and -atlas are required (or -demo)")
	}
	var pages []*image.NRGBA
	for _, p := range strings.Split(cfg.Pages, ",") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		img, err := outfit.LoadImage(p)
		if err != nil {
			return nil, err
		}
		pages = append(pages, img)
	}
	atlasJSON, err := os.ReadFile(cfg.Atlas)
	if err != nil {
		return nil, fmt.Errorf("read atlas: %w", err)
	}
	atlas, err := outfit.LoadAtlas(atlasJSON, pages)
	if err != nil {
		return nil, err
	}
	rigJSON, err := os.ReadFile(cfg.Rig)
	if err != nil {
		return nil, fmt.Errorf("read rig: %w", err)
	}
	return outfit.LoadSkeletonData(rigJSON, atlas)
}
