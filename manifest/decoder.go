package manifest

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown manifest format")

// Decoder turns an encoded manifest into a Manifest. Validation happens
// after decoding, in Load.
type Decoder interface {
	Name() string
	Decode(body []byte, m *Manifest) error
}

var (
	JSON     Decoder = jsonDecoder{}
	YAML     Decoder = yamlDecoder{}
	TOML     Decoder = tomlDecoder{}
	MsgPack  Decoder = msgpackDecoder{}
	ProtoBuf Decoder = protobufDecoder{}
	XML      Decoder = xmlDecoder{}
	Plain    Decoder = plainDecoder{}
)

// Default returns the decoder for a format name or file extension.
func Default(format string) (Decoder, error) {
	switch strings.ToLower(format) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	case "msgpack", "mpk":
		return MsgPack, nil
	case "protobuf", "pb":
		return ProtoBuf, nil
	case "xml":
		return XML, nil
	case "plain", "txt", "routes":
		return Plain, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
}
