package stt

import "context"

// Provider transcribes an uploaded audio object. The uri is a durable
// storage locator (gs://bucket/object), not a provider download link.
// Recognition of long recordings can block for minutes; callers bound the
// call with the context deadline.
type Provider interface {
	Transcribe(ctx context.Context, uri, language string, alternateLangs []string) (string, error)
	Close() error
}
