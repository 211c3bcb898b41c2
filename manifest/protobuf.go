package manifest

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// protobufDecoder reads a manifest serialized as a google.protobuf.Struct
// with the same field names as the JSON form.
type protobufDecoder struct{}

func (protobufDecoder) Name() string {
	return "protobuf"
}

func (protobufDecoder) Decode(body []byte, m *Manifest) error {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(body, s); err != nil {
		return err
	}
	b, err := Json.Marshal(s.AsMap())
	if err != nil {
		return err
	}
	return Json.Unmarshal(b, m)
}

// EncodeProtoBuf writes m in the format protobufDecoder reads.
func EncodeProtoBuf(m *Manifest) ([]byte, error) {
	b, err := Json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := Json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}
