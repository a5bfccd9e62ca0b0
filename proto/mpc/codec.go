package mpc

import "encoding/json"

// Codec is a gRPC encoding.Codec that marshals RPC payloads as JSON. It is
// installed explicitly by both the participant server and the orchestrator's
// client (grpc.ForceServerCodec and grpc.ForceCodec) rather than registered
// globally under the "proto" name, so it never collides with a real
// protobuf codec if one is added later.
type Codec struct{}

func (Codec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (Codec) Name() string {
	return "mpc-json"
}
