package main

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenes/engine"
	"github.com/Carmen-Shannon/oxy-scenes/engine/loader"
	"github.com/Carmen-Shannon/oxy-scenes/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scenes/engine/window"
	"github.com/Carmen-Shannon/oxy-scenes/scenes"
	"github.com/urfave/cli"
)

// lookupScene resolves the single scene name argument.
func lookupScene(ctx *cli.Context) (*scenes.Variant, error) {
	if ctx.NArg() != 1 {
		return nil, errors.New("missing scene name argument")
	}
	v, ok := scenes.Lookup(ctx.Args().First())
	if !ok {
		return nil, fmt.Errorf("unknown scene %q, see the list command", ctx.Args().First())
	}
	return v, nil
}

// RunScene renders a scene in a desktop window until it is closed.
func RunScene(ctx *cli.Context) error {
	setupLogging(ctx)

	v, err := lookupScene(ctx)
	if err != nil {
		return err
	}

	presentMode := renderer.PresentModeVSync
	if ctx.Bool("uncapped") {
		presentMode = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAAOff
	if ctx.Bool("msaa") {
		msaa = renderer.MSAA4x
	}

	win := window.NewWindow(
		window.WithTitle("oxy-scenes: "+v.Name),
		window.WithWidth(ctx.Int("width")),
		window.WithHeight(ctx.Int("height")),
	)
	defer win.Close()

	lc := engine.NewLifecycle(
		engine.WithName(v.Name),
		engine.WithRendererFactory(renderer.NewFactory(renderer.BackendTypeWGPU,
			renderer.WithLabel(v.Name),
			renderer.WithPresentMode(presentMode),
			renderer.WithMSAA(msaa),
		)),
		engine.WithFPS(ctx.Float64("fps")),
		engine.WithProfiling(ctx.Bool("profile")),
	)

	h, err := v.Mount(lc, win, loader.NewLoader(loader.WithBaseDir(ctx.String("assets"))))
	if err != nil {
		return err
	}
	defer lc.Teardown(h)

	if v.Orbit && lc.Active() {
		oc, err := lc.EnableOrbit()
		if err != nil {
			return err
		}
		win.SetKeyDownCallback(orbitKeys(oc))
		defer win.SetKeyDownCallback(nil)
	}

	logger.Noticef("running %s, press Escape to quit", v.Name)
	win.ProcessMessages()
	return nil
}
