package services

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	// The default proto codec has to be registered before ours replaces it.
	_ "google.golang.org/grpc/encoding/proto"
	"google.golang.org/protobuf/proto"
)

// Name is the gRPC content-subtype the codec answers to. It is the default
// one, so callers need no call option and protoc-generated peers interop.
const Name = "proto"

// WireMessage is implemented by every message of this package.
type WireMessage interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire([]byte) error
}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec serializes WireMessage values and falls back to the protobuf
// runtime for generated messages, so services such as health checking keep
// working on the same server.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case WireMessage:
		return m.MarshalWire()
	case proto.Message:
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("services codec: cannot marshal %T", v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case WireMessage:
		return m.UnmarshalWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	}
	return fmt.Errorf("services codec: cannot unmarshal into %T", v)
}

func (Codec) Name() string {
	return Name
}
