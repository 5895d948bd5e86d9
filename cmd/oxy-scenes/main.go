package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
)

// GLFW must be driven from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "oxy-scenes"
	app.Usage = "run and snapshot small 3D demo scenes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable debug logging, including the software rasterizer",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list",
			Usage:  "list available scenes",
			Action: ListScenes,
		},
		{
			Name:  "run",
			Usage: "open a window and render a scene on the GPU",
			Description: `
Mount a scene in a desktop window and render it with WebGPU until the window is
closed or Escape is pressed. Scenes with orbit controls follow left-button drags
and the scroll wheel.`,
			ArgsUsage: "scene_name",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 1280,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 720,
					Usage: "window height",
				},
				cli.Float64Flag{
					Name:  "fps",
					Value: 60,
					Usage: "frame loop rate",
				},
				cli.BoolFlag{
					Name:  "uncapped",
					Usage: "present without waiting for vertical sync",
				},
				cli.BoolFlag{
					Name:  "msaa",
					Usage: "enable 4x multisampling",
				},
				cli.BoolFlag{
					Name:  "profile",
					Usage: "log frame statistics every second",
				},
				cli.StringFlag{
					Name:  "assets, a",
					Value: ".",
					Usage: "directory model paths are resolved against",
				},
			},
			Action: RunScene,
		},
		{
			Name:  "snapshot",
			Usage: "render a scene headless and save a PNG",
			Description: `
Mount a scene in an offscreen container, advance its frame loop a fixed number
of ticks with the software renderer and write the last frame to a PNG file.`,
			ArgsUsage: "scene_name",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 640,
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 480,
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "frames, n",
					Value: 1,
					Usage: "number of frame ticks before the snapshot",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.StringFlag{
					Name:  "assets, a",
					Value: ".",
					Usage: "directory model paths are resolved against",
				},
			},
			Action: SnapshotScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
