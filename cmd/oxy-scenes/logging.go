package main

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-scenes/log"
	"github.com/gogpu/gg"
	"github.com/urfave/cli"
)

var logger = log.New("oxy-scenes")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
		gg.SetLogger(slog.New(log.NewSlogHandler("gg")))
	}
}
