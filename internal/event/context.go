package event

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Header names the gateway reads context fields from.
const (
	HeaderMessageQOS       = "X-Message-Qos"
	HeaderMessageTopic     = "X-Message-Topic"
	HeaderMessageTimestamp = "X-Message-Timestamp"
	HeaderFunctionName     = "X-Function-Name"
	HeaderFunctionInvokeID = "X-Function-Invoke-Id"
)

var headerKeys = map[string]string{
	HeaderMessageQOS:       KeyMessageQOS,
	HeaderMessageTopic:     KeyMessageTopic,
	HeaderMessageTimestamp: KeyMessageTimestamp,
	HeaderFunctionName:     KeyFunctionName,
	HeaderFunctionInvokeID: KeyFunctionInvokeID,
}

// FromHeaders builds a Context from the X-* headers of an HTTP request.
// Headers that are absent are left out.
func FromHeaders(h http.Header) Context {
	c := Context{}
	for header, key := range headerKeys {
		if values := h.Values(header); len(values) > 0 {
			c[key] = values[0]
		}
	}
	return c
}

// FromLambda builds a Context from the Lambda invocation context. The message
// fields are taken from the client context custom map when the caller set them.
func FromLambda(ctx context.Context) Context {
	c := Context{}
	if lambdacontext.FunctionName != "" {
		c[KeyFunctionName] = lambdacontext.FunctionName
	}

	lc, ok := lambdacontext.FromContext(ctx)
	if !ok {
		return c
	}

	if lc.AwsRequestID != "" {
		c[KeyFunctionInvokeID] = lc.AwsRequestID
	}

	for _, key := range []string{KeyMessageQOS, KeyMessageTopic, KeyMessageTimestamp} {
		if v, ok := lc.ClientContext.Custom[key]; ok {
			c[key] = v
		}
	}
	return c
}
