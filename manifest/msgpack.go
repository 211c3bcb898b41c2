package manifest

import (
	"github.com/ugorji/go/codec"
)

type msgpackDecoder struct{}

func (msgpackDecoder) Name() string {
	return "msgpack"
}

func (msgpackDecoder) Decode(body []byte, m *Manifest) error {
	return codec.NewDecoderBytes(body, msgpackHandle()).Decode(m)
}

// EncodeMsgPack writes m in the format msgpackDecoder reads.
func EncodeMsgPack(m *Manifest) ([]byte, error) {
	var b []byte
	err := codec.NewEncoderBytes(&b, msgpackHandle()).Encode(m)
	return b, err
}

func msgpackHandle() *codec.MsgpackHandle {
	h := new(codec.MsgpackHandle)
	h.RawToString = true
	return h
}
