package loader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/timewinder-dev/attackpath/strips"
)

func parseTOML(r io.Reader) (*TaskFile, error) {
	var out TaskFile
	md, err := toml.NewDecoder(r).Decode(&out)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &out, nil
}

func LoadTOML(path string) (*strips.GroundTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tf, err := parseTOML(f)
	if err != nil {
		return nil, err
	}
	return tf.Build()
}
