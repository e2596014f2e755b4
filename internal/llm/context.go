package llm

import "context"

type contextKey struct{}

// Purpose labels recorded with every logged request.
const (
	PurposeNarration = "narration"
	PurposeUnknown   = "unknown"
)

// WithPurpose tags ctx so logged events can be grouped by what asked for
// them.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, contextKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
