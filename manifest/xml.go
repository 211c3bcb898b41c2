package manifest

import (
	"encoding/xml"
)

// xmlDecoder reads
//
//	<manifest router="trie"><route method="GET" path="/users/:id"/></manifest>
type xmlDecoder struct{}

func (xmlDecoder) Name() string {
	return "xml"
}

func (xmlDecoder) Decode(body []byte, m *Manifest) error {
	return xml.Unmarshal(body, m)
}
