package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshview/internal/campath"
	"github.com/Faultbox/meshview/internal/config"
)

// pathSample is one evaluated camera pose.
type pathSample struct {
	Time     float64    `yaml:"t"`
	Segment  int        `yaml:"segment"`
	LocalT   float64    `yaml:"local_t"`
	Position [3]float32 `yaml:"position,flow"`
	Target   [3]float32 `yaml:"target,flow"`
}

func cmdPath(args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file with flythrough segments (default: built-in campus path)")
	n := fs.Int("n", 50, "Number of samples over one loop")
	format := fs.String("format", "csv", "Output format: csv or yaml")
	output := fs.String("o", "", "Output file (default: stdout)")
	fs.Parse(args)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return err
		}
	}
	tl, err := cfg.Flythrough.Timeline()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeSamples(w, samplePath(tl, *n), *format)
}

// samplePath evaluates n evenly spaced poses over one loop, starting at 0.
func samplePath(tl *campath.Timeline, n int) []pathSample {
	if n < 1 {
		n = 1
	}
	total := tl.TotalDuration()
	out := make([]pathSample, n)
	for i := range out {
		t := total * float64(i) / float64(n)
		s := tl.Evaluate(t)
		out[i] = pathSample{
			Time:     t,
			Segment:  s.Segment,
			LocalT:   s.LocalT,
			Position: s.Position.Array(),
			Target:   s.Target.Array(),
		}
	}
	return out
}

func writeSamples(w io.Writer, samples []pathSample, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(samples); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		fmt.Fprintln(w, "t,segment,local_t,px,py,pz,tx,ty,tz")
		for _, s := range samples {
			fmt.Fprintf(w, "%.4f,%d,%.4f,%g,%g,%g,%g,%g,%g\n",
				s.Time, s.Segment, s.LocalT,
				s.Position[0], s.Position[1], s.Position[2],
				s.Target[0], s.Target[1], s.Target[2])
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
