package otel

import (
	"context"

	"github.com/adrianliechti/docparse/pkg/auth"

	"go.opentelemetry.io/otel/attribute"
)

type KeyValue = attribute.KeyValue

type contextKey string

const requestIDKey contextKey = "request_id"

func String(key string, val string) KeyValue {
	return attribute.String(key, val)
}

func Int(key string, val int) KeyValue {
	return attribute.Int(key, val)
}

func KeyValues(attrs ...[]KeyValue) []KeyValue {
	var result []KeyValue

	for _, a := range attrs {
		result = append(result, a...)
	}

	return result
}

// WithRequestID stores the id of the inbound request for attribute enrichment.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func RequestAttrs(ctx context.Context) []KeyValue {
	var attrs []KeyValue

	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, attribute.String("docparse.request.id", id))
	}

	return attrs
}

func EndUserAttrs(ctx context.Context) []KeyValue {
	var attrs []KeyValue

	if user := auth.User(ctx); user != "" {
		attrs = append(attrs, attribute.String("enduser.id", user))
	}

	if email := auth.Email(ctx); email != "" {
		attrs = append(attrs, attribute.String("enduser.email", email))
	}

	return attrs
}
