// Package outcome models the closed set of results a resource operation
// can produce. Exactly one Kind is set per Outcome.
package outcome

// Kind identifies which variant an Outcome holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindOk
	KindCreated
	KindNoContent
	KindNotFound
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindCreated:
		return "created"
	case KindNoContent:
		return "no_content"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	default:
		return "invalid"
	}
}

// None is the payload of outcomes that never carry a value.
type None struct{}

// Outcome is a discriminated result. Only Ok and Created carry a value;
// only Created carries a location.
type Outcome[T any] struct {
	kind     Kind
	value    T
	location string
}

func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{kind: KindOk, value: v}
}

// Created records a new resource reachable at location.
func Created[T any](location string, v T) Outcome[T] {
	return Outcome[T]{kind: KindCreated, value: v, location: location}
}

func NoContent[T any]() Outcome[T] {
	return Outcome[T]{kind: KindNoContent}
}

func NotFound[T any]() Outcome[T] {
	return Outcome[T]{kind: KindNotFound}
}

func BadRequest[T any]() Outcome[T] {
	return Outcome[T]{kind: KindBadRequest}
}

func (o Outcome[T]) Kind() Kind {
	return o.kind
}

// Value returns the payload and whether the variant carries one.
func (o Outcome[T]) Value() (T, bool) {
	if o.kind != KindOk && o.kind != KindCreated {
		var zero T
		return zero, false
	}
	return o.value, true
}

func (o Outcome[T]) Location() string {
	return o.location
}
