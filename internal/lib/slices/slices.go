package slices

import "log/slog"

// Map applies a function to each element of a slice and returns a new slice with the results.
func Map[I, O any](s []I, f func(I) O) []O {
	m := make([]O, len(s))
	for i, v := range s {
		m[i] = f(v)
	}
	return m
}

// Collect applies f to each element and keeps the successful results.
// Failures are logged with msg and skipped so one bad element never hides its siblings.
func Collect[I, O any](s []I, msg string, f func(I) (O, error)) []O {
	out := make([]O, 0, len(s))
	for i, v := range s {
		o, err := f(v)
		if err != nil {
			slog.Warn(msg, "index", i, "error", err)
			continue
		}
		out = append(out, o)
	}
	return out
}
