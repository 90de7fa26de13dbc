package main

import (
	"errors"
	"fmt"
	gomath "math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/footprint"
	"github.com/Faultbox/spotlight/internal/engine/lighting"
	"github.com/Faultbox/spotlight/internal/engine/rig"
	"github.com/Faultbox/spotlight/internal/logger"
)

func previewOptions(p config.PreviewConfig) footprint.Options {
	opts := footprint.DefaultOptions()
	opts.Width, opts.Height = p.Width, p.Height
	opts.Extent = p.Extent
	opts.Supersample = p.Supersample
	opts.Index = lightIndex
	return opts
}

// framePath inserts a zero-padded frame number before the extension.
func framePath(path string, frame int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(path, ext), frame, ext)
}

func renderFrame(spot *lighting.SpotLight, opts footprint.Options, path string) error {
	rec, err := app.Pack(spot, nil, lightIndex)
	if err != nil {
		return err
	}
	img, err := footprint.Render(rec, opts)
	if err != nil {
		return err
	}
	if err := footprint.Save(path, img); err != nil {
		return err
	}
	logger.Info("frame written", zap.String("path", path), zap.Float32("cone", spot.ConeAngle()))
	return nil
}

func cmdPreview(cfg *config.Config) error {
	setup, err := app.BuildRig(cfg)
	if err != nil {
		return err
	}
	p := cfg.Preview
	opts := previewOptions(p)

	if p.Frames <= 1 {
		return renderFrame(setup.Spot, opts, p.Output)
	}

	duration := float32(p.Duration.Seconds())
	if duration <= 0 {
		duration = 1
	}
	sweep, err := rig.NewSweep(setup.Node, setup.Spot, p.SweepDeg*gomath.Pi/180, duration, 0, ease.InOutSine)
	if err != nil {
		return err
	}

	// Frames are posed in order on this goroutine; each task renders a
	// frozen copy of the light.
	pool := worker.NewDynamicWorkerPool(max(p.Workers, 1), p.Frames, time.Second)
	dt := duration / float32(p.Frames-1)
	errs := make([]error, p.Frames)
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < p.Frames; i++ {
		if i > 0 {
			if err := sweep.Update(dt); err != nil {
				wg.Wait()
				return err
			}
		}

		snap := setup.Spot.Clone()
		path := framePath(p.Output, i)
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				errs[i] = renderFrame(snap, opts, path)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	logger.Info("preview sweep rendered",
		zap.Int("frames", p.Frames),
		zap.Int("workers", max(p.Workers, 1)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return errors.Join(errs...)
}
