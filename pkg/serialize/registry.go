package serialize

// Constructor builds a concrete node of family type T from its wire object.
type Constructor[T any] func(Object) (T, error)

// Registry resolves discriminator values to concrete node constructors for
// one variant family. Registration happens at package init time; lookups
// are plain map reads and never consult runtime type information.
type Registry[T any] struct {
	family string
	key    string
	ctors  map[string]Constructor[T]
}

// NewRegistry creates a registry for the named family whose discriminator
// lives under the given wire key.
func NewRegistry[T any](family, key string) *Registry[T] {
	return &Registry[T]{
		family: family,
		key:    key,
		ctors:  make(map[string]Constructor[T]),
	}
}

// Register binds a bare variant name to its constructor.
func (r *Registry[T]) Register(name string, ctor Constructor[T]) {
	r.ctors[name] = ctor
}

// Decode resolves the discriminator of the given wire value and invokes
// the matching constructor. It fails with *UnknownVariantError when the
// bare name is not registered, and with *DecodeError when the value is not
// an object or lacks the discriminator key.
func (r *Registry[T]) Decode(v any) (T, error) {
	var zero T
	o, err := AsObject(v)
	if err != nil {
		return zero, &DecodeError{Key: r.key, Message: "variant is not an object"}
	}
	tag, err := String(o, r.key)
	if err != nil {
		return zero, err
	}
	name := ClassName(tag)
	ctor, ok := r.ctors[name]
	if !ok {
		return zero, &UnknownVariantError{Family: r.family, Name: name}
	}
	return ctor(o)
}
