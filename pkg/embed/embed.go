// Package embed handles the boundary between the builder and the embeddable
// checkout widget: serializing a composition into an iframe query parameter
// and decoding the messages the widget posts back to its host page.
package embed

import (
	"encoding/base64"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ConfigParam is the query parameter the widget reads its configuration from.
const ConfigParam = "config"

// PaymentTokenType tags the message the widget posts after tokenizing a
// payment.
const PaymentTokenType = "PAYMENT_TOKEN"

// EncodeConfig serializes a composition for transport inside a URL query
// parameter. The payload is JSON wrapped in unpadded base64url so it survives
// query-string encoding untouched.
func EncodeConfig(composition model.Composition) (string, error) {
	data, err := json.Marshal(composition)
	if err != nil {
		return "", fmt.Errorf("embed: encode config: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeConfig reverses EncodeConfig. Legacy payloads holding a bare field
// array decode the same way they do on the wire.
func DecodeConfig(encoded string) (model.Composition, error) {
	if encoded == "" {
		return model.Composition{}, errors.New("embed: empty config parameter")
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		// Tolerate padded encoders.
		data, err = base64.URLEncoding.DecodeString(encoded)
		if err != nil {
			return model.Composition{}, fmt.Errorf("embed: decode config parameter: %w", err)
		}
	}

	composition, err := model.DecodeComposition(data)
	if err != nil {
		return model.Composition{}, fmt.Errorf("embed: decode config payload: %w", err)
	}
	return composition, nil
}

// WidgetURL builds the iframe src for a widget host page with the encoded
// configuration attached.
func WidgetURL(base string, composition model.Composition) (string, error) {
	if base == "" {
		return "", errors.New("embed: base url is required")
	}
	encoded, err := EncodeConfig(composition)
	if err != nil {
		return "", err
	}
	sep := "?"
	for _, r := range base {
		if r == '?' {
			sep = "&"
		}
	}
	return base + sep + ConfigParam + "=" + encoded, nil
}

// Message is a widget-to-host notification.
type Message struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

// DecodeMessage parses a raw widget message.
func DecodeMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("embed: decode message: %w", err)
	}
	if msg.Type == "" {
		return Message{}, errors.New("embed: message type is required")
	}
	return msg, nil
}

// PaymentToken extracts the token from a PAYMENT_TOKEN message. The second
// return reports whether the message was a payment token notification at all;
// other message types are not an error, just not for us.
func PaymentToken(data []byte) (string, bool, error) {
	msg, err := DecodeMessage(data)
	if err != nil {
		return "", false, err
	}
	if msg.Type != PaymentTokenType {
		return "", false, nil
	}
	if msg.Token == "" {
		return "", true, errors.New("embed: payment token message without token")
	}
	return msg.Token, true, nil
}
