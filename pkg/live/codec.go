package live

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/internal/errors"
)

// Codec encodes frames for one websocket connection.
type Codec interface {
	// Name returns the config spelling of the codec.
	Name() string

	// MessageType returns the websocket message type frames travel in.
	MessageType() int

	Encode(f Frame) ([]byte, error)
	Decode(data []byte) (Frame, error)
}

// JSONCodec sends frames as websocket text messages. The bundled browser
// client uses it.
type JSONCodec struct{}

func (JSONCodec) Name() string     { return config.CodecJSON }
func (JSONCodec) MessageType() int { return websocket.TextMessage }

func (JSONCodec) Encode(f Frame) ([]byte, error) {
	return json.Marshal(f)
}

func (JSONCodec) Decode(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, errors.New("E301").Wrap(err)
	}
	return f, nil
}

// MsgpackCodec sends frames as websocket binary messages.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string     { return config.CodecMsgpack }
func (MsgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (MsgpackCodec) Encode(f Frame) ([]byte, error) {
	return msgpack.Marshal(&f)
}

func (MsgpackCodec) Decode(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return Frame{}, errors.New("E301").Wrap(err)
	}
	return f, nil
}

// CodecByName returns the codec with the given config name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case config.CodecJSON, "":
		return JSONCodec{}, nil
	case config.CodecMsgpack:
		return MsgpackCodec{}, nil
	}
	return nil, errors.New("E203").WithDetailf("unknown codec %q", name)
}
