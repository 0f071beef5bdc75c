package logging

import (
	"time"

	"github.com/rs/zerolog"
)

// Field mutates a zerolog event. Fields are applied in order.
type Field func(e *zerolog.Event)

// String adds a string field.
func String(k, v string) Field {
	return func(e *zerolog.Event) { e.Str(k, v) }
}

// Int adds an integer field.
func Int(k string, v int) Field {
	return func(e *zerolog.Event) { e.Int(k, v) }
}

// Bool adds a boolean field.
func Bool(k string, v bool) Field {
	return func(e *zerolog.Event) { e.Bool(k, v) }
}

// Duration adds a duration field.
func Duration(k string, v time.Duration) Field {
	return func(e *zerolog.Event) { e.Dur(k, v) }
}

// Err adds the error under the "error" key. A nil error adds nothing.
func Err(err error) Field {
	return func(e *zerolog.Event) {
		if err != nil {
			e.Err(err)
		}
	}
}
