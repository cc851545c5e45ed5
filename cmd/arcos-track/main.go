// Package main tracks collective events in a CSV of per-frame
// observations and writes each row's frame and coordinates back out, in
// frame order, with an event id column appended. Input columns after the
// coordinate columns are not written.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/hinderling/arcos4go/internal/arcos/cluster"
	"github.com/hinderling/arcos4go/internal/arcos/config"
	"github.com/hinderling/arcos4go/internal/arcos/driver"
	"github.com/hinderling/arcos4go/internal/arcos/tabular"
)

// cliConfig holds the resolved command-line configuration.
type cliConfig struct {
	InputPath   string
	OutputPath  string
	ConfigPath  string
	PosCols     int
	Eps         float64
	MinClSz     int
	MemoryNPrev int
	Method      string
}

func main() {
	cfg := parseFlags()

	tuning := config.EmptyTuningConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadTuningConfig(cfg.ConfigPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		tuning = loaded
	}
	params := tuning.ToParams()
	if cfg.Eps > 0 {
		params.Eps = cfg.Eps
	}
	if cfg.MinClSz > 0 {
		params.MinClusterSize = cfg.MinClSz
	}
	if cfg.MemoryNPrev > 0 {
		params.MemoryDepth = cfg.MemoryNPrev
	}
	if cfg.Method != "" {
		params.Method = cluster.Method(cfg.Method)
	}

	table, err := readTable(cfg.InputPath, cfg.PosCols)
	if err != nil {
		log.Fatalf("reading input: %v", err)
	}

	seq, err := driver.TrackEventsDataframe(table, params)
	if err != nil {
		log.Fatalf("configuring linker: %v", err)
	}

	if err := writeFrames(cfg.OutputPath, cfg.PosCols, seq); err != nil {
		log.Fatalf("writing output: %v", err)
	}
}

func parseFlags() cliConfig {
	var cfg cliConfig
	flag.StringVar(&cfg.InputPath, "input", "", "input CSV path with frame,x,y[,...] columns (required)")
	flag.StringVar(&cfg.OutputPath, "output", "", "output CSV path (required)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "optional JSON tuning config path")
	flag.IntVar(&cfg.PosCols, "pos-cols", 2, "number of position columns after frame (x, y[, z])")
	flag.Float64Var(&cfg.Eps, "eps", 0, "clustering radius (overrides config)")
	flag.IntVar(&cfg.MinClSz, "min-cluster-size", 0, "minimum cluster size (overrides config)")
	flag.IntVar(&cfg.MemoryNPrev, "memory-depth", 0, "number of past frames retained (overrides config)")
	flag.StringVar(&cfg.Method, "method", "", "clustering method: dbscan or hdbscan (overrides config)")
	flag.Parse()

	if cfg.InputPath == "" || cfg.OutputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: arcos-track -input in.csv -output out.csv [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	return cfg
}

// readTable parses a CSV of the form "frame,x,y[,z],..." into a Table.
// The frame column is required; exactly posCols columns after it are read
// as coordinates.
func readTable(path string, posCols int) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 1+posCols {
		return nil, fmt.Errorf("expected at least %d columns, header has %d", 1+posCols, len(header))
	}

	table := &tabular.Table{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("parsing frame %q: %w", record[0], err)
		}
		coords := make([]float64, posCols)
		for i := 0; i < posCols; i++ {
			v, err := strconv.ParseFloat(record[1+i], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing coordinate %q: %w", record[1+i], err)
			}
			coords[i] = v
		}

		table.Frame = append(table.Frame, frame)
		table.Coords = append(table.Coords, coords)
	}
	return table, nil
}

// writeFrames drains seq and writes "frame,x,y[,z],event_id" rows in the
// order they're yielded.
func writeFrames(path string, posCols int, seq func(yield func(*tabular.Table) bool)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, 0, posCols+2)
	header = append(header, "frame")
	for i := 0; i < posCols; i++ {
		header = append(header, fmt.Sprintf("pos%d", i))
	}
	header = append(header, "event_id")
	if err := w.Write(header); err != nil {
		return err
	}

	for frame := range seq {
		for i := 0; i < frame.Len(); i++ {
			row := make([]string, 0, posCols+2)
			row = append(row, strconv.Itoa(frame.Frame[i]))
			for _, v := range frame.Coords[i] {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			}
			row = append(row, strconv.Itoa(frame.EventID[i]))
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
