package loader

import (
	"io"
	"os"

	"github.com/timewinder-dev/attackpath/strips"
	"gopkg.in/yaml.v3"
)

func parseYAML(r io.Reader) (*TaskFile, error) {
	var out TaskFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func LoadYAML(path string) (*strips.GroundTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tf, err := parseYAML(f)
	if err != nil {
		return nil, err
	}
	return tf.Build()
}
