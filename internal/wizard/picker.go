package wizard

import "context"

// PickResult is the single outcome of a photo request.
type PickResult struct {
	Ref       PhotoRef
	Cancelled bool
}

// Selected is the outcome of a completed pick.
func Selected(ref PhotoRef) PickResult { return PickResult{Ref: ref} }

// Cancelled is the outcome of a dismissed pick.
func Cancelled() PickResult { return PickResult{Cancelled: true} }

// PhotoPicker acquires a photo from the host's media library. A cancelled
// pick is a result, not an error.
type PhotoPicker interface {
	Pick(ctx context.Context) (PickResult, error)
}

// PickerFunc adapts a function to PhotoPicker.
type PickerFunc func(ctx context.Context) (PickResult, error)

func (f PickerFunc) Pick(ctx context.Context) (PickResult, error) { return f(ctx) }
