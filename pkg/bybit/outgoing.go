// pkg/bybit/outgoing.go
package bybit

import (
	"encoding/json"
	"fmt"
)

// Op is the command tag of a stream frame.
type Op string

const (
	OpSubscribe   Op = "subscribe"
	OpUnsubscribe Op = "unsubscribe"
	OpAuth        Op = "auth"
	OpPing        Op = "ping"
	OpPong        Op = "pong"
)

// OutgoingMessage is a command frame sent to the stream endpoint.
//
// The field order is fixed by the struct: the op tag always serializes
// first, req_id and args are omitted when empty. Build commands through
// the constructors below rather than filling the struct by hand.
type OutgoingMessage struct {
	Op    Op     `json:"op"`
	ReqID string `json:"req_id,omitempty"`
	Args  []any  `json:"args,omitempty"`
}

// Subscribe builds a subscription command for the given topics.
// The reqID correlates the command with its acknowledgement and may be
// empty.
func Subscribe(reqID string, topics ...string) OutgoingMessage {
	return OutgoingMessage{Op: OpSubscribe, ReqID: reqID, Args: topicArgs(topics)}
}

// Unsubscribe builds an unsubscription command for the given topics.
func Unsubscribe(reqID string, topics ...string) OutgoingMessage {
	return OutgoingMessage{Op: OpUnsubscribe, ReqID: reqID, Args: topicArgs(topics)}
}

// Auth builds an authentication command for private streams. The
// signature is an HMAC over the expiry timestamp; the timestamp is
// serialized as a bare integer, not a string.
func Auth(reqID, apiKey string, expiresMs int64, signature string) OutgoingMessage {
	return OutgoingMessage{Op: OpAuth, ReqID: reqID, Args: []any{apiKey, expiresMs, signature}}
}

// Ping builds an application-level keepalive command.
func Ping(reqID string) OutgoingMessage {
	return OutgoingMessage{Op: OpPing, ReqID: reqID}
}

// Pong builds an application-level pong command.
func Pong(reqID string) OutgoingMessage {
	return OutgoingMessage{Op: OpPong, ReqID: reqID}
}

// Encode serializes a command into its wire form.
func Encode(msg OutgoingMessage) ([]byte, error) {
	if msg.Op == "" {
		return nil, fmt.Errorf("bybit: encode: empty op")
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("bybit: encode %s: %w", msg.Op, err)
	}
	return data, nil
}

func topicArgs(topics []string) []any {
	if len(topics) == 0 {
		return nil
	}
	args := make([]any, len(topics))
	for i, t := range topics {
		args[i] = t
	}
	return args
}
