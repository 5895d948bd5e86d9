package main

import (
	"bytes"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenes/scenes"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the registered scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description", "Orbit", "Model"})
	for _, v := range scenes.All() {
		model := "-"
		if v.Model != "" {
			model = v.Model
		}
		table.Append([]string{v.Name, v.Description, fmt.Sprintf("%t", v.Orbit), model})
	}
	table.Render()

	fmt.Print(buf.String())
	return nil
}
