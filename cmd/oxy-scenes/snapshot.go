package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-scenes/engine"
	"github.com/Carmen-Shannon/oxy-scenes/engine/frame"
	"github.com/Carmen-Shannon/oxy-scenes/engine/loader"
	"github.com/Carmen-Shannon/oxy-scenes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
	"github.com/Carmen-Shannon/oxy-scenes/scenes"
	"github.com/urfave/cli"
)

// maxLoadTicks bounds how long a snapshot waits for an asynchronous model.
const maxLoadTicks = 600

// SnapshotScene renders a scene offscreen with the software renderer and saves a PNG.
func SnapshotScene(ctx *cli.Context) error {
	setupLogging(ctx)

	v, err := lookupScene(ctx)
	if err != nil {
		return err
	}

	container := window.NewHeadless(ctx.Int("width"), ctx.Int("height"))
	src := frame.NewManualSource()
	lc := engine.NewLifecycle(
		engine.WithName(v.Name),
		engine.WithRendererFactory(renderer.NewFactory(renderer.BackendTypeSoftware)),
		engine.WithFrameSource(src),
	)

	ld := loader.NewLoader(loader.WithBaseDir(ctx.String("assets")))
	h, err := v.Mount(lc, container, ld)
	if err != nil {
		return err
	}
	defer lc.Teardown(h)

	if v.Model != "" {
		if err := waitForModel(v, ld, lc, src); err != nil {
			return err
		}
	}

	frames := max(ctx.Int("frames"), 1)
	if got := src.TickN(frames); got != frames {
		return fmt.Errorf("frame loop stopped after %d of %d frames", got, frames)
	}

	sw, ok := lc.Renderer().(renderer.SoftwareRenderer)
	if !ok {
		return fmt.Errorf("renderer %s cannot snapshot", lc.Renderer().Backend())
	}

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := sw.Snapshot(f); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	w, hgt := sw.Size()
	logger.Noticef("wrote %s (%dx%d, %d triangles)", out, w, hgt, sw.Triangles())
	return nil
}

// waitForModel ticks the loop until the model's objects appear. A model that fails to
// load is reported instead of waiting.
func waitForModel(v *scenes.Variant, ld loader.Loader, lc engine.Lifecycle, src *frame.ManualSource) error {
	if _, err := ld.Load(v.Model); err != nil {
		return err
	}
	for i := 0; i < maxLoadTicks && lc.Scene().Len() == 0; i++ {
		src.Tick()
	}
	if lc.Scene().Len() == 0 {
		return fmt.Errorf("model %s did not load within %d frames", v.Model, maxLoadTicks)
	}
	return nil
}
