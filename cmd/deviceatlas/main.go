// Command deviceatlas resolves device properties for User-Agent strings.
//
// Usage:
//
//	deviceatlas -dataset DeviceAtlas.json 'Mozilla/5.0 (SymbianOS/9.2; ...)'
//	cat agents.txt | deviceatlas -dataset DeviceAtlas.json -format yaml
//	deviceatlas -dataset DeviceAtlas.json -property model -property vendor -i
//
// The dataset path falls back to the DEVICEATLAS_DATASET environment variable.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrymomot/deviceatlas/pkg/deviceatlas"
	"github.com/dmitrymomot/deviceatlas/pkg/logger"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	var (
		datasetPath string
		format      string
		interactive bool
		verbose     bool
		properties  stringList
	)

	flag.StringVar(&datasetPath, "dataset", os.Getenv("DEVICEATLAS_DATASET"), "Path to the JSON dataset")
	flag.StringVar(&format, "format", "json", "Output format: json, yaml")
	flag.BoolVar(&interactive, "i", false, "Interactive prompt")
	flag.BoolVar(&verbose, "v", false, "Log dataset diagnostics to stderr")
	flag.Var(&properties, "property", "Resolve only this property (repeatable)")
	flag.Parse()

	if datasetPath == "" {
		fmt.Fprintln(os.Stderr, "deviceatlas: -dataset or DEVICEATLAS_DATASET is required")
		os.Exit(2)
	}

	enc, err := newEncoder(format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "deviceatlas: %v\n", err)
		os.Exit(2)
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	log := logger.New(
		logger.WithTextFormatter(),
		logger.WithLevel(logger.ParseLevel(level)),
		logger.WithOutput(os.Stderr),
	)

	atlas, err := deviceatlas.LoadFile(datasetPath, deviceatlas.WithLogger(log))
	if err != nil {
		log.Error("failed to load dataset", logger.Dataset(datasetPath), logger.Error(err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := &resolver{atlas: atlas, properties: properties, enc: enc}

	switch {
	case interactive:
		err = runInteractive(ctx, r, format)
	case flag.NArg() > 0:
		for _, ua := range flag.Args() {
			if err = r.resolve(ua); err != nil {
				break
			}
		}
	default:
		err = r.resolveLines(ctx, os.Stdin)
	}

	if err != nil {
		log.Error("lookup failed", logger.Error(err))
		os.Exit(1)
	}
}

type resolver struct {
	atlas      *deviceatlas.Atlas
	properties []string
	enc        encoder
}

func (r *resolver) lookup(ua string) (deviceatlas.Device, error) {
	if len(r.properties) == 0 {
		return r.atlas.Device(ua), nil
	}
	return r.atlas.Properties(ua, r.properties...)
}

func (r *resolver) resolve(ua string) error {
	d, err := r.lookup(ua)
	if err != nil {
		return err
	}
	return r.enc.Encode(d)
}

// resolveLines resolves one User-Agent per non-blank input line.
func (r *resolver) resolveLines(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := r.resolve(line); err != nil {
			return err
		}
	}
	return sc.Err()
}
