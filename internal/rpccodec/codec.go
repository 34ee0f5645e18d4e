// Package rpccodec provides a gRPC encoding.Codec for plain Go structs,
// used in place of protobuf-generated messages: every service in
// internal/api is defined against ordinary request/response types and
// wired with hand-written grpc.ServiceDesc values, so the wire encoding
// only needs to round-trip Go values, not protobuf wire format.
package rpccodec

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Name is the gRPC content-subtype this codec registers under. Clients
// select it with grpc.CallContentSubtype(rpccodec.Name); servers pick it
// up automatically once registered via encoding.RegisterCodec.
const Name = "gob"

// Codec implements google.golang.org/grpc/encoding.Codec using
// encoding/gob. It round-trips the concrete request/response struct types
// declared in internal/api/*/v1; it does not support protobuf messages.
type Codec struct{}

// Marshal encodes v with gob.
func (Codec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("rpccodec: marshal failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into v, which must be a pointer to a type
// previously passed to Marshal.
func (Codec) Unmarshal(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("rpccodec: unmarshal failed: %w", err)
	}
	return nil
}

// Name reports the content-subtype name.
func (Codec) Name() string { return Name }
