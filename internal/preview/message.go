package preview

import "github.com/tidwall/gjson"

// MessageTypeConsole tags log lines forwarded from the preview frame
const MessageTypeConsole = "console"

// Message is a payload posted from the preview frame to its parent
type Message struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Generation int    `json:"generation,omitempty"`
}

// ParseMessage decodes a raw cross-frame payload. Anything that is not an
// object with a string "type" is rejected; other fields are read leniently.
func ParseMessage(raw []byte) (Message, bool) {
	if !gjson.ValidBytes(raw) {
		return Message{}, false
	}
	data := gjson.ParseBytes(raw)
	if !data.IsObject() {
		return Message{}, false
	}

	typ := data.Get("type")
	if typ.Type != gjson.String {
		return Message{}, false
	}

	return Message{
		Type:       typ.String(),
		Message:    data.Get("message").String(),
		Generation: int(data.Get("generation").Int()),
	}, true
}
