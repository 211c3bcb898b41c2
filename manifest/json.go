package manifest

import (
	jsoniter "github.com/json-iterator/go"
)

var Json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonDecoder struct{}

func (jsonDecoder) Name() string {
	return "json"
}

func (jsonDecoder) Decode(body []byte, m *Manifest) error {
	return Json.Unmarshal(body, m)
}
