package query

import "strings"

// Opt holds a value that may be absent.
type Opt[T any] struct {
	val T
	ok  bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{val: v, ok: true}
}

func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the held value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.ok
}

func (o Opt[T]) IsSome() bool {
	return o.ok
}

// Map applies f to the held value. An absent value stays absent.
func Map[T, U any](o Opt[T], f func(T) U) Opt[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(f(o.val))
}

// Text returns Some(s) when s contains at least one non-whitespace character.
func Text(s string) Opt[string] {
	if strings.TrimSpace(s) == "" {
		return None[string]()
	}
	return Some(s)
}
