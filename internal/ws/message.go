package ws

import (
	"encoding/json"
	"fmt"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

// Message is the inbound wire envelope: a type tag plus a payload whose
// shape depends on the tag
type Message struct {
	Type    model.IntentType `json:"type"`
	Payload json.RawMessage  `json:"payload"`
}

func parseMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("malformed message: %w", err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("message missing type")
	}
	return msg, nil
}

// decodePayload unmarshals the payload into v, treating an absent payload
// as the zero value
func decodePayload(msg Message, v any) error {
	if len(msg.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("malformed %s payload: %w", msg.Type, err)
	}
	return nil
}
