package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// DefaultTitle is the title used when none is supplied.
const DefaultTitle = "deno_notify"

// Notification is a fully populated request, ready for a backend.
type Notification struct {
	Title   string `json:"title" yaml:"title"`
	Message string `json:"message" yaml:"message"`
	Icon    Icon   `json:"icon" yaml:"icon"`
	Sound   string `json:"sound,omitempty" yaml:"sound,omitempty"`
}

// DefaultNotification returns the defaults every request is merged over.
func DefaultNotification() Notification {
	return Notification{
		Title:   DefaultTitle,
		Message: "",
		Icon:    NamedIcon(DefaultIconName),
	}
}

// Input is a notification request in one of its two accepted shapes:
// PlainMessage or Options.
type Input interface {
	normalize() (Notification, error)
}

// PlainMessage is the string form of a request. Every other field takes its default.
type PlainMessage string

func (m PlainMessage) normalize() (Notification, error) {
	n := DefaultNotification()
	n.Message = string(m)
	return n, nil
}

// Options is the record form of a request. A nil field is absent and falls
// back to its default; a non-nil field, even an empty string, is supplied.
// Message is mandatory.
type Options struct {
	Title   *string `json:"title,omitempty" yaml:"title,omitempty"`
	Message *string `json:"message,omitempty" yaml:"message,omitempty"`
	Icon    *Icon   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Sound   *string `json:"sound,omitempty" yaml:"sound,omitempty"`
}

// String returns a pointer to s, for filling Options.
func String(s string) *string { return &s }

// NewOptions returns Options carrying only a message.
func NewOptions(message string) Options {
	return Options{Message: String(message)}
}

// WithTitle returns a copy of o with the title supplied.
func (o Options) WithTitle(title string) Options {
	o.Title = String(title)
	return o
}

// WithIcon returns a copy of o with the icon supplied.
func (o Options) WithIcon(icon Icon) Options {
	o.Icon = &icon
	return o
}

// WithSound returns a copy of o with the sound supplied.
func (o Options) WithSound(sound string) Options {
	o.Sound = String(sound)
	return o
}

func (o Options) normalize() (Notification, error) {
	if o.Message == nil {
		return Notification{}, &InvalidRequestError{Field: "message", Reason: "message is required"}
	}

	n := DefaultNotification()
	n.Message = *o.Message
	if o.Title != nil {
		n.Title = *o.Title
	}
	if o.Icon != nil {
		if err := o.Icon.Validate(); err != nil {
			return Notification{}, err
		}
		n.Icon = *o.Icon
	}
	if o.Sound != nil {
		n.Sound = *o.Sound
	}
	return n, nil
}

// Normalize merges in over the defaults. Misuse is reported as
// *InvalidRequestError.
func Normalize(in Input) (Notification, error) {
	switch v := in.(type) {
	case nil:
		return Notification{}, &InvalidRequestError{Reason: "no request given"}
	case *Options:
		if v == nil {
			return Notification{}, &InvalidRequestError{Reason: "no request given"}
		}
	}
	return in.normalize()
}

// DecodeOptionsJSON reads a JSON request document. Unknown keys are rejected.
func DecodeOptionsJSON(r io.Reader) (Options, error) {
	var o Options
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		return Options{}, asInvalidRequest(err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Options{}, errTrailingContent
	}
	return o, nil
}

// DecodeOptionsYAML reads a YAML (or JSON) request document. Unknown keys are rejected.
func DecodeOptionsYAML(r io.Reader) (Options, error) {
	var o Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return Options{}, &InvalidRequestError{Field: "request", Reason: "empty request document"}
		}
		return Options{}, asInvalidRequest(err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Options{}, errTrailingContent
	}
	return o, nil
}

// DecodeOptions picks the decoder from the document's first non-space byte.
func DecodeOptions(data []byte) (Options, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeOptionsJSON(bytes.NewReader(trimmed))
	}
	return DecodeOptionsYAML(bytes.NewReader(trimmed))
}

// errTrailingContent rejects input carrying more than one request document.
var errTrailingContent = &InvalidRequestError{Field: "request", Reason: "unexpected content after the request document"}

func asInvalidRequest(err error) error {
	var invalid *InvalidRequestError
	if errors.As(err, &invalid) {
		return invalid
	}
	return &InvalidRequestError{Field: "request", Reason: err.Error()}
}
