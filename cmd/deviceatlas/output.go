package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/deviceatlas/pkg/deviceatlas"
)

type encoder interface {
	Encode(d deviceatlas.Device) error
}

func newEncoder(format string, w io.Writer) (encoder, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return jsonEncoder{enc: enc}, nil
	case "yaml":
		return yamlEncoder{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: must be json or yaml", format)
	}
}

// jsonEncoder writes one JSON object per line.
type jsonEncoder struct{ enc *json.Encoder }

func (e jsonEncoder) Encode(d deviceatlas.Device) error {
	return e.enc.Encode(map[string]any(d))
}

// yamlEncoder writes one YAML document per device.
type yamlEncoder struct{ w io.Writer }

func (e yamlEncoder) Encode(d deviceatlas.Device) error {
	out, err := yaml.Marshal(map[string]any(d))
	if err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, "---\n"); err != nil {
		return err
	}
	_, err = e.w.Write(out)
	return err
}
