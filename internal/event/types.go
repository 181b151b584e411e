package event

// Kind identifies which shape an Event carries.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindStructured
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindRaw:
		return "raw"
	default:
		return "unrecognized"
	}
}

// Event is the per-invocation payload. Exactly one of Fields or Bytes is meaningful,
// selected by Kind.
type Event struct {
	Kind   Kind
	Fields map[string]any
	Bytes  []byte
}

// Context keys recognized by the handler.
const (
	KeyMessageQOS       = "messageQOS"
	KeyMessageTopic     = "messageTopic"
	KeyMessageTimestamp = "messageTimestamp"
	KeyFunctionName     = "functionName"
	KeyFunctionInvokeID = "functionInvokeID"
)

// ContextKeys lists the recognized context keys in the order they are copied.
var ContextKeys = []string{
	KeyMessageQOS,
	KeyMessageTopic,
	KeyMessageTimestamp,
	KeyFunctionName,
	KeyFunctionInvokeID,
}

// Context is per-invocation metadata supplied by the invoking framework.
type Context map[string]any
