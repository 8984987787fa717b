package rpcapi

import "encoding/json"

// JSONCodec is the Connect "json" codec for the plain Go messages in this
// package. It takes the place of connect's protojson codec, which only
// accepts generated proto.Message types.
type JSONCodec struct{}

// Name implements connect.Codec
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec
func (JSONCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements connect.Codec. An empty body is an empty message.
func (JSONCodec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
