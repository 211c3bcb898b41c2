package manifest

import (
	"github.com/goccy/go-yaml"
)

type yamlDecoder struct{}

func (yamlDecoder) Name() string {
	return "yaml"
}

func (yamlDecoder) Decode(body []byte, m *Manifest) error {
	return yaml.Unmarshal(body, m)
}
