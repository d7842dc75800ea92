package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-foundry/pkg/builder"
)

// Confirmer asks destructive-action confirmations through d. An aborted
// prompt counts as a decline.
func Confirmer(d Driver) builder.Confirmer {
	return builder.ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
		ok, err := d.Confirm(ctx, ConfirmConfig{Message: message})
		if errors.Is(err, ErrAborted) {
			return false, nil
		}
		return ok, err
	})
}

// Notifier prints builder notices through d.
func Notifier(ctx context.Context, d Driver) builder.Notifier {
	return builder.NotifierFunc(func(n builder.Notice) {
		_ = d.Info(ctx, fmt.Sprintf("[%s] %s", n.Level, n.Message))
	})
}
