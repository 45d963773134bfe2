package api

import (
	"encoding/json"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Codec is the Connect codec for tripkit messages. It registers under the
// name "json", replacing Connect's protojson codec: protobuf messages (the
// well-known emptypb.Empty) still go through protojson, plain structs go
// through encoding/json.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

// WithCodec configures a handler to accept the tripkit JSON codec.
func WithCodec() connect.HandlerOption {
	return connect.WithCodec(Codec{})
}

// WithClientCodec configures a client to speak the tripkit JSON codec.
func WithClientCodec() connect.ClientOption {
	return connect.WithCodec(Codec{})
}
