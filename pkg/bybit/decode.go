// pkg/bybit/decode.go
package bybit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedShape is wrapped by DecodeError when a frame matches no
// known message variant.
var ErrUnrecognizedShape = errors.New("unrecognized message shape")

// DecodeError reports an inbound frame that could not be decoded. Raw
// keeps the full payload for logging; a session logs decode failures and
// keeps reading.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	raw := string(e.Raw)
	if len(raw) > 256 {
		raw = raw[:256] + "..."
	}
	return fmt.Sprintf("bybit: decode %q: %v", raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode maps an inbound frame to its message variant.
//
// Frames are untagged, so the variant is picked by probing three fields:
// a non-empty "op" means a command acknowledgement, otherwise "topic"
// selects the data stream and "type" splits snapshots from deltas.
// On failure the returned error is always a *DecodeError.
func Decode(data []byte) (IncomingMessage, error) {
	var probe struct {
		Op    string `json:"op"`
		Topic string `json:"topic"`
		Type  string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Raw: data, Err: err}
	}

	var (
		msg IncomingMessage
		err error
	)
	switch {
	case probe.Op != "":
		msg, err = decodeAck(data, Op(probe.Op))
	case probe.Topic == TopicOrder:
		msg, err = unmarshalInto(data, &OrderUpdate{})
	case strings.HasPrefix(probe.Topic, tickerTopicPrefix):
		switch probe.Type {
		case "snapshot":
			msg, err = unmarshalInto(data, &TickerSnapshot{})
		case "delta":
			msg, err = unmarshalInto(data, &TickerDelta{})
		default:
			err = fmt.Errorf("ticker frame with type %q: %w", probe.Type, ErrUnrecognizedShape)
		}
	case strings.HasPrefix(probe.Topic, tradeTopicPrefix):
		msg, err = unmarshalInto(data, &TradeSnapshot{})
	case strings.HasPrefix(probe.Topic, klineTopicPrefix):
		msg, err = unmarshalInto(data, &KlineSnapshot{})
	case strings.HasPrefix(probe.Topic, liquidationTopicPrefix):
		msg, err = unmarshalInto(data, &LiquidationSnapshot{})
	default:
		err = ErrUnrecognizedShape
	}
	if err != nil {
		return nil, &DecodeError{Raw: data, Err: err}
	}
	return msg, nil
}

func decodeAck(data []byte, op Op) (IncomingMessage, error) {
	switch op {
	case OpSubscribe, OpUnsubscribe, OpAuth, OpPing, OpPong:
	default:
		return nil, fmt.Errorf("unknown op %q: %w", op, ErrUnrecognizedShape)
	}
	return unmarshalInto(data, &CommandAck{})
}

func unmarshalInto[T IncomingMessage](data []byte, msg T) (IncomingMessage, error) {
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
