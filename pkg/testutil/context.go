package testutil

import (
	"context"
	"time"

	id "formgate/pkg/domain"
	"formgate/pkg/requestcontext"
)

// FormContext returns a context carrying a fresh form ID and a fixed clock,
// the state a form action would run with.
func FormContext(now time.Time) (context.Context, id.FormID) {
	formID := id.NewFormID()
	ctx := requestcontext.WithFormID(context.Background(), formID)
	return requestcontext.WithTime(ctx, now), formID
}

// At returns ctx with its action-scoped clock moved to t.
func At(ctx context.Context, t time.Time) context.Context {
	return requestcontext.WithTime(ctx, t)
}
