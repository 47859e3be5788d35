package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/nocis/vk-raytracing-tutorial/pkg/core"
)

// LaunchStats summarizes a Launch
type LaunchStats struct {
	Width    int
	Height   int
	Tiles    int // tiles rendered
	Skipped  int // tiles dropped after cancellation
	Workers  int
	Counters Counters
	Duration time.Duration
}

// NewTileGrid splits a width x height image into tiles of at most
// tileSize x tileSize pixels, row by row
func NewTileGrid(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			tiles = append(tiles, image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height)))
		}
	}
	return tiles
}

// Launch traces one primary ray per pixel through the pipeline and returns
// the tone-mapped image. Cancelling ctx skips every tile that has not
// started yet; tiles already running finish and ctx.Err() is returned.
func (p *Pipeline) Launch(ctx context.Context, width, height int) (*image.RGBA, LaunchStats, error) {
	if width <= 0 || height <= 0 {
		return nil, LaunchStats{}, fmt.Errorf("launch: invalid size %dx%d", width, height)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	tiles := NewTileGrid(width, height, p.tileSize)

	pool := NewWorkerPool(ctx, p, img, p.workers, len(tiles))
	pool.Start()

	stats := LaunchStats{Width: width, Height: height, Workers: pool.GetNumWorkers()}
	p.logger.Printf("launch %dx%d: %d primitives, %d tiles, %d workers, light=%s",
		width, height, p.scene.PrimitiveCount(), len(tiles), stats.Workers, p.constants.Light.Type)

	submitted := 0
	for i, tile := range tiles {
		if ctx.Err() != nil {
			break
		}
		pool.SubmitTask(TileTask{TaskID: i, Bounds: tile})
		submitted++
	}
	pool.Stop()

	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Skipped {
			stats.Skipped++
			continue
		}
		stats.Tiles++
		stats.Counters.Add(result.Counters)
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
	}
	stats.Duration = time.Since(start)

	if firstErr != nil {
		return nil, stats, firstErr
	}
	if submitted < len(tiles) || stats.Skipped > 0 {
		p.logger.Printf("launch cancelled after %d of %d tiles: %v", stats.Tiles, len(tiles), ctx.Err())
		return nil, stats, ctx.Err()
	}

	p.logger.Printf("launch done in %v: %d primary rays, %d hits, %d shadow rays (%d occluded)",
		stats.Duration, stats.Counters.PrimaryRays, stats.Counters.Hits,
		stats.Counters.ShadowRays, stats.Counters.Occluded)
	return img, stats, nil
}

// renderTile runs raygen for every pixel of bounds and writes the result
// into target
func (p *Pipeline) renderTile(bounds image.Rectangle, width, height int, target *image.RGBA) (Counters, error) {
	var counters Counters
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := p.camera.PixelRay(x, y, width, height)
			c, err := p.shade(ray, &counters)
			if err != nil {
				return counters, err
			}
			target.SetRGBA(x, y, toRGBA(c))
		}
	}
	return counters, nil
}

func toRGBA(c core.Vec3) color.RGBA {
	c = toneMap(c)
	return color.RGBA{
		R: uint8(c.X*255 + 0.5),
		G: uint8(c.Y*255 + 0.5),
		B: uint8(c.Z*255 + 0.5),
		A: 255,
	}
}
