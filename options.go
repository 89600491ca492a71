package probing

type options[K comparable] struct {
	hashFunc  HashFunc[K]
	invalid   K
	allocator Allocator
	logger    *Logger
}

type Option[K comparable] func(o *options[K])

// Override default hash function. A saved table must be loaded with the same one.
func WithHashFunc[K comparable](f HashFunc[K]) Option[K] {
	return func(o *options[K]) {
		o.hashFunc = f
	}
}

// Override the key marking empty buckets. Defaults to the zero value of K.
func WithInvalidKey[K comparable](invalid K) Option[K] {
	return func(o *options[K]) {
		o.invalid = invalid
	}
}

// Override the allocator owning the table memory. Defaults to HeapAllocator.
func WithAllocator[K comparable](a Allocator) Option[K] {
	return func(o *options[K]) {
		o.allocator = a
	}
}

// Set the logger for growth and persistence events. Logging is off by default.
func WithLogger[K comparable](l *Logger) Option[K] {
	return func(o *options[K]) {
		o.logger = l
	}
}

func buildOptions[K comparable](opts []Option[K]) options[K] {
	var o options[K]
	for _, opt := range opts {
		opt(&o)
	}

	if o.hashFunc == nil {
		o.hashFunc = BytesHash[K]
	}

	if o.allocator == nil {
		o.allocator = HeapAllocator{}
	}

	if o.logger == nil {
		o.logger = NoopLogger()
	}

	return o
}
