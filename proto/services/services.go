// Package services holds the message types and gRPC bindings of the
// services contract described in proto/services.proto.
//
// The messages are plain structs encoded with the protobuf wire format
// (field numbers and types match the .proto file), so peers built from
// the same contract with protoc interoperate with this package.
package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ErrInvalidUTF8 is returned when a string field does not hold valid UTF-8,
// which proto3 forbids on both ends of the wire.
var ErrInvalidUTF8 = errors.New("string field contains invalid UTF-8")

type PaymentRequest struct {
	Amount float64
	UserId string
}

func (x *PaymentRequest) GetAmount() float64 {
	if x != nil {
		return x.Amount
	}
	return 0
}

func (x *PaymentRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *PaymentRequest) MarshalWire() ([]byte, error) {
	if err := checkUTF8("user_id", x.UserId); err != nil {
		return nil, err
	}
	var b []byte
	b = appendDouble(b, 1, x.Amount)
	b = appendString(b, 2, x.UserId)
	return b, nil
}

func (x *PaymentRequest) UnmarshalWire(b []byte) error {
	*x = PaymentRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &x.Amount)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(b, &x.UserId)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (x *PaymentRequest) String() string {
	return textFields(
		"amount", formatDouble(x.GetAmount()),
		"user_id", strconv.Quote(x.GetUserId()),
	)
}

type PaymentResponse struct {
	Success bool
}

func (x *PaymentResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *PaymentResponse) MarshalWire() ([]byte, error) {
	var b []byte
	if x.Success {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b, nil
}

func (x *PaymentResponse) UnmarshalWire(b []byte) error {
	*x = PaymentResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			if n >= 0 {
				x.Success = protowire.DecodeBool(v)
			}
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (x *PaymentResponse) String() string {
	return textFields("success", strconv.FormatBool(x.GetSuccess()))
}

type TransactionRequest struct {
	UserId string
}

func (x *TransactionRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *TransactionRequest) MarshalWire() ([]byte, error) {
	if err := checkUTF8("user_id", x.UserId); err != nil {
		return nil, err
	}
	return appendString(nil, 1, x.UserId), nil
}

func (x *TransactionRequest) UnmarshalWire(b []byte) error {
	*x = TransactionRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 && typ == protowire.BytesType {
			return consumeString(b, &x.UserId)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (x *TransactionRequest) String() string {
	return textFields("user_id", strconv.Quote(x.GetUserId()))
}

type TransactionResponse struct {
	TransactionId string
	UserId        string
	Amount        float64
	CreatedAt     *timestamppb.Timestamp
}

func (x *TransactionResponse) GetTransactionId() string {
	if x != nil {
		return x.TransactionId
	}
	return ""
}

func (x *TransactionResponse) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *TransactionResponse) GetAmount() float64 {
	if x != nil {
		return x.Amount
	}
	return 0
}

func (x *TransactionResponse) GetCreatedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.CreatedAt
	}
	return nil
}

func (x *TransactionResponse) MarshalWire() ([]byte, error) {
	if err := checkUTF8("transaction_id", x.TransactionId, "user_id", x.UserId); err != nil {
		return nil, err
	}
	var b []byte
	b = appendString(b, 1, x.TransactionId)
	b = appendString(b, 2, x.UserId)
	b = appendDouble(b, 3, x.Amount)
	if x.CreatedAt != nil {
		ts, err := proto.Marshal(x.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("created_at: %w", err)
		}
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, ts)
	}
	return b, nil
}

func (x *TransactionResponse) UnmarshalWire(b []byte) error {
	*x = TransactionResponse{}
	var tsErr error
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(b, &x.TransactionId)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(b, &x.UserId)
		case num == 3 && typ == protowire.Fixed64Type:
			return consumeDouble(b, &x.Amount)
		case num == 4 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n
			}
			if x.CreatedAt == nil {
				x.CreatedAt = &timestamppb.Timestamp{}
			}
			// repeated occurrences of an embedded message are merged
			if err := (proto.UnmarshalOptions{Merge: true}).Unmarshal(v, x.CreatedAt); err != nil {
				tsErr = err
			}
			return n
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
	if err != nil {
		return err
	}
	if tsErr != nil {
		return fmt.Errorf("created_at: %w", tsErr)
	}
	return nil
}

func (x *TransactionResponse) String() string {
	createdAt := "<nil>"
	if ts := x.GetCreatedAt(); ts != nil {
		createdAt = ts.AsTime().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return textFields(
		"transaction_id", strconv.Quote(x.GetTransactionId()),
		"user_id", strconv.Quote(x.GetUserId()),
		"amount", formatDouble(x.GetAmount()),
		"created_at", createdAt,
	)
}

type ChatMessage struct {
	User    string
	Message string
}

func (x *ChatMessage) GetUser() string {
	if x != nil {
		return x.User
	}
	return ""
}

func (x *ChatMessage) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

func (x *ChatMessage) MarshalWire() ([]byte, error) {
	if err := checkUTF8("user", x.User, "message", x.Message); err != nil {
		return nil, err
	}
	var b []byte
	b = appendString(b, 1, x.User)
	b = appendString(b, 2, x.Message)
	return b, nil
}

func (x *ChatMessage) UnmarshalWire(b []byte) error {
	*x = ChatMessage{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == 1 && typ == protowire.BytesType:
			return consumeString(b, &x.User)
		case num == 2 && typ == protowire.BytesType:
			return consumeString(b, &x.Message)
		}
		return protowire.ConsumeFieldValue(num, typ, b)
	})
}

func (x *ChatMessage) String() string {
	return textFields(
		"user", strconv.Quote(x.GetUser()),
		"message", strconv.Quote(x.GetMessage()),
	)
}

// consumeFields walks every field of an encoded message. fn returns the
// number of bytes it consumed from the field value, or a negative
// protowire error code.
func consumeFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := fn(num, typ, b)
		if m == invalidUTF8 {
			return fmt.Errorf("field %d: %w", num, ErrInvalidUTF8)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

// proto3 scalars are omitted from the encoding when they hold the zero value.

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 && !math.Signbit(v) {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// invalidUTF8 is the code consumeString reports for a malformed string. It
// lies outside the range of protowire error codes.
const invalidUTF8 = math.MinInt32

func consumeString(b []byte, dst *string) int {
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return n
	}
	if !utf8.ValidString(v) {
		return invalidUTF8
	}
	*dst = v
	return n
}

// checkUTF8 takes name/value pairs of string fields.
func checkUTF8(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if !utf8.ValidString(fields[i+1]) {
			return fmt.Errorf("%s: %w", fields[i], ErrInvalidUTF8)
		}
	}
	return nil
}

func consumeDouble(b []byte, dst *float64) int {
	v, n := protowire.ConsumeFixed64(b)
	if n >= 0 {
		*dst = math.Float64frombits(v)
	}
	return n
}

func formatDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// textFields renders name/value pairs the way prototext prints a message on
// a single line.
func textFields(pairs ...string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(pairs[i])
		sb.WriteByte(':')
		sb.WriteString(pairs[i+1])
	}
	return sb.String()
}
