package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/blackjack/internal/apperrors"
	"github.com/palemoky/blackjack/internal/protocol"
)

// Format 帧编码格式
type Format int

const (
	FormatJSON   Format = iota // 文本帧：扁平 JSON 对象
	FormatBinary               // 二进制帧：protobuf wire 格式
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "json"
}

// 二进制帧字段号
const (
	fieldType    protowire.Number = 1
	fieldPayload protowire.Number = 2
)

var (
	// ErrMissingType 消息缺少 type 字段
	ErrMissingType = errors.New("message type is required")
	// ErrNotObject JSON 帧不是对象
	ErrNotObject = errors.New("message must be a JSON object")
)

// NewMessage 创建一个新消息
func NewMessage(msgType protocol.MessageType, payload any) (*protocol.Message, error) {
	var data json.RawMessage
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return &protocol.Message{
		Type:    msgType,
		Payload: data,
	}, nil
}

// MustNewMessage 创建消息，失败时 panic
func MustNewMessage(msgType protocol.MessageType, payload any) *protocol.Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode 编码为扁平 JSON：{"type":"...", payload 字段...}
func Encode(msg *protocol.Message) ([]byte, error) {
	if msg.Type == "" {
		return nil, ErrMissingType
	}
	typ, err := json.Marshal(msg.Type)
	if err != nil {
		return nil, err
	}

	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.WriteString(`{"type":`)
	buf.Write(typ)

	payload := bytes.TrimSpace(msg.Payload)
	switch {
	case len(payload) == 0 || bytes.Equal(payload, []byte("null")):
		buf.WriteByte('}')
	case payload[0] == '{':
		body := bytes.TrimSpace(payload[1:])
		if len(body) > 0 && body[0] != '}' {
			buf.WriteByte(',')
		}
		buf.Write(body)
	default:
		// 非对象的 payload 挂在 payload 字段下
		buf.WriteString(`,"payload":`)
		buf.Write(payload)
		buf.WriteByte('}')
	}
	return detach(buf), nil
}

// Decode 解码扁平 JSON。Payload 保留整个对象，按需用 ParsePayload 解析。
//
// 返回的消息取自消息池，调用方处理完毕后可用 PutMessage 归还。
func Decode(data []byte) (*protocol.Message, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, ErrNotObject
	}
	var head struct {
		Type protocol.MessageType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Type == "" {
		return nil, ErrMissingType
	}
	msg := GetMessage()
	msg.Type = head.Type
	msg.Payload = append(json.RawMessage(nil), data...)
	return msg, nil
}

// EncodeBinary 编码为 protobuf wire 帧：1=type(string) 2=payload(JSON bytes)
func EncodeBinary(msg *protocol.Message) ([]byte, error) {
	if msg.Type == "" {
		return nil, ErrMissingType
	}
	b := make([]byte, 0, len(msg.Type)+len(msg.Payload)+8)
	b = protowire.AppendTag(b, fieldType, protowire.BytesType)
	b = protowire.AppendString(b, string(msg.Type))
	if len(msg.Payload) > 0 {
		b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
		b = protowire.AppendBytes(b, msg.Payload)
	}
	return b, nil
}

// DecodeBinary 解码 protobuf wire 帧，未知字段跳过。返回的消息同样取自消息池。
func DecodeBinary(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := decodeBinary(msg, data); err != nil {
		PutMessage(msg)
		return nil, err
	}
	return msg, nil
}

func decodeBinary(msg *protocol.Message, data []byte) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldType && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(data)
			if m < 0 {
				return fmt.Errorf("decode type: %w", protowire.ParseError(m))
			}
			msg.Type = protocol.MessageType(v)
			n = m
		case num == fieldPayload && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(data)
			if m < 0 {
				return fmt.Errorf("decode payload: %w", protowire.ParseError(m))
			}
			msg.Payload = append(json.RawMessage(nil), v...)
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
			}
		}
		data = data[n:]
	}
	if msg.Type == "" {
		return ErrMissingType
	}
	return nil
}

// Marshal 按格式编码
func Marshal(msg *protocol.Message, format Format) ([]byte, error) {
	if format == FormatBinary {
		return EncodeBinary(msg)
	}
	return Encode(msg)
}

// Unmarshal 按格式解码
func Unmarshal(data []byte, format Format) (*protocol.Message, error) {
	if format == FormatBinary {
		return DecodeBinary(data)
	}
	return Decode(data)
}

// ParsePayload 解析消息的 Payload 到指定类型。空 payload 视为 {}。
func ParsePayload[T any](msg *protocol.Message) (*T, error) {
	var payload T
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NewErrorMessage 创建错误消息
func NewErrorMessage(code int) *protocol.Message {
	return MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    code,
		Message: protocol.ErrorMessages[code],
	})
}

// NewErrorFromErr 由错误创建错误消息，非 GameError 统一为未知错误
func NewErrorFromErr(err error) *protocol.Message {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		return MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
			Code:    gameErr.Code,
			Message: gameErr.Message,
		})
	}
	return NewErrorMessage(protocol.ErrCodeUnknown)
}
