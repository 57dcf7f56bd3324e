// Package contextx carries the per-request logger and trace id through
// context.Context, so every layer logs with the same correlation fields.
package contextx

import "errors"

var ErrNoValue = errors.New("no value in context")
