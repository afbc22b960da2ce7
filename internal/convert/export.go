package convert

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/rbxvmf/internal/pack"
	"github.com/Faultbox/rbxvmf/pkg/rbx"
	"github.com/Faultbox/rbxvmf/pkg/vmf"
)

// Fetcher downloads an image asset scaled to width x height pixels.
type Fetcher interface {
	Fetch(ctx context.Context, id, width, height uint64) (image.Image, error)
}

// Catalog provides the stock texture of a named material. Open returns an
// error wrapping fs.ErrNotExist when the catalog has no such texture.
type Catalog interface {
	Open(name string) (io.ReadCloser, error)
}

// ExportStats counts export outcomes.
type ExportStats struct {
	// Saved counts written materials (VMT plus any fetched image).
	Saved int
	// Copied counts stock textures copied from the catalog.
	Copied int
	// Skipped counts textures with no source available.
	Skipped int
	// Failed counts textures that could not be fetched or read.
	Failed int
}

// Exporter writes the material files referenced by a scene.
type Exporter struct {
	Sink pack.Sink
	// Fetcher downloads decals and textures; nil skips them.
	Fetcher Fetcher
	// Catalog provides stock textures; nil skips copying.
	Catalog Catalog
	Logger  *zap.Logger
}

func (e *Exporter) log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Export writes materials for every generated texture in storage order.
// Fetched assets are saved as PNG next to their VMT; other materials get a
// tinted VMT referencing a stock texture, which is copied once into rbx/.
//
// Failures for individual textures are logged and counted. Export only
// returns an error when the sink fails or ctx is done.
func (e *Exporter) Export(ctx context.Context, textures []Texture) (ExportStats, error) {
	var stats ExportStats
	log := e.log()
	var stock []string

	for _, t := range textures {
		if !t.MustGenerate() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		switch m := t.Material.(type) {
		case rbx.Decal:
			if err := e.exportAsset(ctx, t, m.ID, &stats); err != nil {
				return stats, err
			}
		case rbx.Texture:
			if err := e.exportAsset(ctx, t, m.ID, &stats); err != nil {
				return stats, err
			}
		default:
			name := t.Material.Name()
			if !slices.Contains(stock, name) {
				stock = append(stock, name)
			}
			if err := e.writeVMT(t.Name()+".vmt", coloredVMT(t)); err != nil {
				return stats, err
			}
			log.Debug("saved material", zap.String("name", t.Name()))
			stats.Saved++
		}
	}

	for _, name := range stock {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := e.copyStock(name, &stats); err != nil {
			return stats, err
		}
	}

	log.Info("exported textures",
		zap.Int("saved", stats.Saved),
		zap.Int("copied", stats.Copied),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed))
	return stats, nil
}

func (e *Exporter) exportAsset(ctx context.Context, t Texture, id uint64, stats *ExportStats) error {
	log := e.log().With(zap.Uint64("asset", id), zap.String("name", t.Name()))
	if e.Fetcher == nil {
		log.Debug("skipped asset, no fetcher")
		stats.Skipped++
		return nil
	}

	img, err := e.Fetcher.Fetch(ctx, id, t.DimX, t.DimY)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("failed to fetch asset", zap.Error(err))
		stats.Failed++
		return nil
	}

	if err := e.create(t.Name()+".png", func(w io.Writer) error {
		return png.Encode(w, img)
	}); err != nil {
		return err
	}
	if err := e.writeVMT(t.Name()+".vmt", assetVMT(t)); err != nil {
		return err
	}
	log.Debug("saved asset")
	stats.Saved++
	return nil
}

func (e *Exporter) copyStock(name string, stats *ExportStats) error {
	log := e.log().With(zap.String("texture", name))
	if e.Catalog == nil {
		stats.Skipped++
		return nil
	}

	src, err := e.Catalog.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("skipped stock texture, not in catalog")
		stats.Skipped++
		return nil
	}
	if err != nil {
		log.Warn("failed to read stock texture", zap.Error(err))
		stats.Failed++
		return nil
	}
	defer src.Close()

	if err := e.create("rbx/"+name+".png", func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	}); err != nil {
		return err
	}
	log.Debug("copied stock texture")
	stats.Copied++
	return nil
}

func (e *Exporter) writeVMT(name string, m vmf.VMT) error {
	return e.create(name, func(w io.Writer) error {
		_, err := m.WriteTo(w)
		return err
	})
}

func (e *Exporter) create(name string, write func(io.Writer) error) error {
	w, err := e.Sink.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := write(w); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	return nil
}

// assetVMT describes a fetched decal or texture.
func assetVMT(t Texture) vmf.VMT {
	return vmf.VMT{
		BaseTexture: t.Name(),
		Translucent: t.Transparency != 255,
		EnvMapTint:  float64(t.Reflectance) / 255,
	}
}

// coloredVMT tints a stock texture with the part color, gamma corrected.
func coloredVMT(t Texture) vmf.VMT {
	m := vmf.VMT{
		BaseTexture: "rbx/" + t.Material.Name(),
		Color: &[3]float64{
			gamma(t.Color.R),
			gamma(t.Color.G),
			gamma(t.Color.B),
		},
		EnvMapTint: float64(t.Reflectance) / 255,
	}
	if t.Transparency != 255 {
		alpha := float64(t.Transparency) / 255
		m.Alpha = &alpha
	}
	return m
}

func gamma(c uint8) float64 {
	return math.Pow(float64(c)/255, 2.2)
}
