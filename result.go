package analogsdk

// Result wraps either a successful value of type T or an ErrorKind. It is
// the in-process equivalent of the int/float sentinel channels the C ABI
// (capi) exposes: every aggregation and plugin-dispatch path in this
// module returns a Result instead of a bare (T, error) pair, so the
// conversion to a C-friendly return value at the ABI boundary is total
// and mechanical.
type Result[T any] struct {
	value T
	kind  ErrorKind
	ok    bool
}

// OkResult wraps a successful value.
func OkResult[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// ErrResult wraps a failure. Passing Ok is a programmer error; callers
// should use OkResult for the success case.
func ErrResult[T any](kind ErrorKind) Result[T] {
	return Result[T]{kind: kind, ok: false}
}

// DefaultResult is the zero value for an uninitialized dispatch path: an
// Err(FunctionNotFound), so that a Result left unset by a plugin that
// never answers degrades safely rather than reporting bogus success.
func DefaultResult[T any]() Result[T] {
	return ErrResult[T](FunctionNotFound)
}

// Get returns the wrapped value and true, or the zero value and false.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// Unwrap returns the wrapped value and a nil error on success, or the
// zero value and the ErrorKind (as an error) on failure.
func (r Result[T]) Unwrap() (T, error) {
	if r.ok {
		return r.value, nil
	}

	return r.value, r.kind
}

// Err returns the wrapped ErrorKind, or Ok if the result is successful.
func (r Result[T]) Err() ErrorKind {
	if r.ok {
		return Ok
	}

	return r.kind
}

// IsOk reports whether the result is successful.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IntFromResult converts a Result[int] to the int return channel: success
// returns the value (which must be >= 0), failure returns the ErrorKind
// as a signed int.
func IntFromResult(r Result[int]) int {
	if r.ok {
		return r.value
	}

	return int(r.kind)
}

// ResultFromInt decodes the int return channel back into a Result[int]:
// non-negative becomes success, negative is decoded to the named
// ErrorKind, falling back to Failure for unrecognized values.
func ResultFromInt(value int) Result[int] {
	var (
		kind  ErrorKind
		known bool
	)

	if value >= 0 {
		return OkResult(value)
	}

	kind, known = KnownErrorKind(int32(value))
	if !known {
		return ErrResult[int](Failure)
	}

	return ErrResult[int](kind)
}

// FloatFromResult converts a Result[float32] to the float return channel
// used for analog reads. Success must be in [0.0, 1.0] and is returned
// as-is; failure encodes the ErrorKind as (int32(kind) as float32), which
// is always a large negative number and therefore unambiguous against any
// legal analog value.
func FloatFromResult(r Result[float32]) float32 {
	if r.ok {
		return r.value
	}

	return float32(r.kind)
}

// ResultFromFloat decodes the float return channel back into a
// Result[float32]: non-negative becomes success, negative is decoded to
// the named ErrorKind via a round-trip through int32, falling back to
// Failure for unrecognized values.
func ResultFromFloat(value float32) Result[float32] {
	var (
		kind  ErrorKind
		known bool
	)

	if value >= 0.0 {
		return OkResult(value)
	}

	kind, known = KnownErrorKind(int32(value))
	if !known {
		return ErrResult[float32](Failure)
	}

	return ErrResult[float32](kind)
}

// EnumFromVoid converts a void-or-error Result to the enum-int return
// channel: success maps to Ok, failure returns the ErrorKind directly.
func EnumFromVoid(r Result[struct{}]) ErrorKind {
	if r.ok {
		return Ok
	}

	return r.kind
}

// VoidOk is the canonical success value for void-or-error operations.
func VoidOk() Result[struct{}] {
	return OkResult(struct{}{})
}

// VoidErr wraps kind as a void-or-error failure.
func VoidErr(kind ErrorKind) Result[struct{}] {
	return ErrResult[struct{}](kind)
}
