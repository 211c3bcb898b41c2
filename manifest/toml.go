package manifest

import (
	"github.com/pelletier/go-toml/v2"
)

type tomlDecoder struct{}

func (tomlDecoder) Name() string {
	return "toml"
}

func (tomlDecoder) Decode(body []byte, m *Manifest) error {
	return toml.Unmarshal(body, m)
}
