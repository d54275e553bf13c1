package main

import (
	"flag"
	"fmt"

	"github.com/Faultbox/meshview/internal/config"
)

func cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default: meshview.yaml in the user config directory)")
	scene := fs.String("scene", "", "Scene to select in the written file")
	model := fs.String("model", "", "Model path for the selected scene")
	fs.Parse(args)

	cfg := config.Default()
	if *scene != "" {
		cfg.Scene = *scene
	}
	if *model != "" {
		cfg.SetModel(*model)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := *output
	if path == "" {
		var err error
		if path, err = cfg.Save(); err != nil {
			return err
		}
	} else if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
