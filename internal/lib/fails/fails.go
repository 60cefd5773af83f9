package fails

import (
	"errors"
	"maps"
	"strings"

	"github.com/quintans/noovo/internal/lib/values"
)

type Valuer interface {
	error
	Values() map[string]any
	WithValues(args ...any) Valuer
}

func New(msg string, args ...any) Valuer {
	return &ValuesError{
		msg:    msg,
		values: values.ToMap(args),
	}
}

// NewWithErr wraps err, usually a sentinel, adding a message and key/value context.
func NewWithErr(err error, msg string, args ...any) Valuer {
	return &ValuesError{
		err:    err,
		msg:    msg,
		values: values.ToMap(args),
	}
}

type ValuesError struct {
	err    error
	msg    string
	values map[string]any
}

func (e *ValuesError) Error() string {
	var str strings.Builder
	str.WriteString(e.msg)
	if len(e.values) > 0 {
		str.WriteString(" ")
		str.WriteString(values.ToStr(e.values))
	}

	if e.err != nil {
		str.WriteString(": ")
		str.WriteString(e.err.Error())
	}

	return str.String()
}

func (e *ValuesError) Unwrap() error {
	return e.err
}

// Values returns the values associated with the error and its cause.
func (e *ValuesError) Values() map[string]any {
	m := maps.Clone(e.values)
	if m == nil {
		m = map[string]any{}
	}
	var valuer Valuer
	if errors.As(e.err, &valuer) {
		maps.Copy(m, valuer.Values())
	}
	return m
}

func (e *ValuesError) WithValues(args ...any) Valuer {
	maps.Copy(e.values, values.ToMap(args))
	return e
}

// Attrs returns the key/value context found anywhere in the error chain,
// ready to be handed to slog.
func Attrs(err error) []any {
	var valuer Valuer
	if !errors.As(err, &valuer) {
		return nil
	}
	return values.ToArgs(valuer.Values())
}
