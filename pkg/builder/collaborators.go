package builder

import (
	"context"
	"time"

	"github.com/goliatone/go-foundry/pkg/model"
)

// WarningDismissAfter is how long locked-for-editing warnings stay visible.
const WarningDismissAfter = 3 * time.Second

// LockedMessage is the notice shown when editing is attempted in test mode.
const LockedMessage = "Editing is not allowed in test mode. Please disable test mode to edit."

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function into a Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// AlwaysConfirm approves every request.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// NoticeLevel classifies a Notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a transient user-facing message. DismissAfter is zero when the
// host decides the lifetime.
type Notice struct {
	Level        NoticeLevel
	Message      string
	DismissAfter time.Duration
}

// Notifier receives notices emitted by the engine.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// Renderer produces the preview markup for a field displayed with cfg.
type Renderer interface {
	RenderField(field model.Field, cfg model.FieldConfig) (string, error)
}
