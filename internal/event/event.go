package event

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

func Structured(fields map[string]any) Event {
	return Event{Kind: KindStructured, Fields: fields}
}

func Raw(b []byte) Event {
	return Event{Kind: KindRaw, Bytes: b}
}

func Unrecognized() Event {
	return Event{Kind: KindUnrecognized}
}

// Decode classifies a wire payload. A JSON object becomes a structured event with
// numbers kept as json.Number, anything that is not valid UTF-8 JSON becomes a raw
// event, and any other JSON value is unrecognized.
func Decode(payload []byte) Event {
	trimmed := bytes.TrimSpace(payload)
	// encoding/json would silently replace invalid sequences inside strings.
	if !utf8.Valid(trimmed) || !json.Valid(trimmed) {
		return Raw(payload)
	}

	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Unrecognized()
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	fields := make(map[string]any)
	if err := decoder.Decode(&fields); err != nil {
		return Raw(payload)
	}
	return Structured(fields)
}

// Get returns the value stored under key and whether it was present.
func (c Context) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}
