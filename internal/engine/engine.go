// Package engine orchestrates one patch run: decode the container,
// render every layer's raster in parallel, synthesize the layers in
// spec order, and encode the result.
package engine

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/svgapatch/internal/config"
	"github.com/ivlev/svgapatch/internal/raster"
	"github.com/ivlev/svgapatch/internal/svga"
	"github.com/ivlev/svgapatch/internal/synth"
	"github.com/ivlev/svgapatch/internal/system"
	"github.com/ivlev/svgapatch/internal/wire"
)

// Producer renders layer rasters and derives shine variants. Satisfied
// by raster.Renderer; tests substitute fakes.
type Producer interface {
	Produce(ctx context.Context, req raster.Request) ([]byte, error)
	Shine(ctx context.Context, raster []byte) ([]byte, error)
}

// Project is one patch run over one container.
type Project struct {
	Spec     *config.PatchSpec
	Codec    *wire.Codec
	Producer Producer
	Logger   *charmlog.Logger
}

// New assembles a project. A nil logger falls back to the default.
func New(spec *config.PatchSpec, codec *wire.Codec, producer Producer, logger *charmlog.Logger) *Project {
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Project{Spec: spec, Codec: codec, Producer: producer, Logger: logger}
}

// Run executes the patch. Raster failures degrade to transparent layers
// with a warning; everything else aborts with no output written.
func (p *Project) Run(ctx context.Context) error {
	data, err := os.ReadFile(p.Spec.Input)
	if err != nil {
		return err
	}

	doc, err := p.Codec.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", p.Spec.Input, err)
	}
	p.Logger.Info("decoded container",
		"version", doc.Version,
		"frames", doc.Params.Frames,
		"sprites", len(doc.Sprites),
		"images", len(doc.Images))

	rasters, err := p.renderRasters(ctx)
	if err != nil {
		return err
	}

	// Synthesis order is spec order; rasterization above is not.
	synthesizer := &synth.Synthesizer{Shine: p.Producer}
	for i, layer := range p.Spec.Layers {
		doc, err = synthesizer.Synthesize(ctx, doc,
			layerRect(layer.Rect), layer.Name, rasters[i], layerOptions(layer))
		if err != nil {
			return fmt.Errorf("layer %q: %w", layer.Name, err)
		}
	}

	out, repairs, err := p.Codec.Encode(doc, wire.EncodeOptions{Compress: p.Spec.Compress})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	for _, r := range repairs {
		p.Logger.Warn("repaired document", "kind", r.Kind, "key", r.Key, "detail", r.Detail)
	}

	if err := os.WriteFile(p.Spec.Output, out, 0644); err != nil {
		return err
	}
	p.Logger.Info("wrote container", "path", p.Spec.Output, "bytes", len(out), "layers", len(p.Spec.Layers))
	return nil
}

// renderRasters produces all layer rasters concurrently. Slots for
// layers whose raster could not be produced stay nil; the synthesizer
// substitutes a transparent raster for those.
func (p *Project) renderRasters(ctx context.Context) ([][]byte, error) {
	rasters := make([][]byte, len(p.Spec.Layers))
	if len(rasters) == 0 {
		return rasters, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(system.RasterWorkers(len(p.Spec.Layers)))

	for i, layer := range p.Spec.Layers {
		g.Go(func() error {
			req, err := p.request(layer)
			if err == nil {
				rasters[i], err = p.Producer.Produce(ctx, req)
			}
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				p.Logger.Warn("raster failed, layer will be transparent", "layer", layer.Name, "err", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rasters, nil
}

func (p *Project) request(layer config.Layer) (raster.Request, error) {
	req := raster.Request{
		Width:  int(layer.Rect.Width),
		Height: int(layer.Rect.Height),
		Page:   layer.Page,
	}

	switch layer.Kind {
	case "text":
		req.Kind = raster.KindText
		req.Text = layer.Content
		req.Style = raster.TextStyle{Font: layer.Font, Size: layer.FontSize}
		if layer.Color != "" {
			col, err := raster.ParseHexColor(layer.Color)
			if err != nil {
				return req, err
			}
			req.Style.Color = col
		}
	case "qr":
		req.Kind = raster.KindQR
		req.Text = layer.Content
	case "image", "pdf":
		data, err := os.ReadFile(layer.Content)
		if err != nil {
			return req, err
		}
		req.Data = data
		if layer.Kind == "image" {
			req.Kind = raster.KindImage
		} else {
			req.Kind = raster.KindPDF
		}
	default:
		return req, fmt.Errorf("unknown layer kind %q", layer.Kind)
	}
	return req, nil
}

func layerRect(r config.Rect) svga.Rect {
	return svga.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func layerOptions(layer config.Layer) synth.Options {
	opts := synth.Options{Cycles: layer.Cycles, Intensity: layer.Intensity}
	for _, e := range layer.Effects {
		switch e {
		case "pulse":
			opts.Presets |= synth.PresetPulse
		case "float":
			opts.Presets |= synth.PresetFloat
		case "shine":
			opts.Presets |= synth.PresetShine
		}
	}
	return opts
}
