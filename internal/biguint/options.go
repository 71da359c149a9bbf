//go:generate mockgen -source=options.go -destination=mocks/mock_observer.go -package=mocks

package biguint

import (
	"github.com/agbru/biguint/internal/logging"
)

const (
	// DefaultCapacity is the number of zero bytes a value starts with when
	// neither WithCapacity nor WithBytes is given.
	DefaultCapacity = 64

	// DefaultSlabSize is the size of the bump-allocated block each scope
	// reserves up front. Allocations that do not fit fall back to the heap.
	DefaultSlabSize = 4 << 10
)

// Observer receives engine events. Implementations must be cheap; they run
// inline with every operation.
type Observer interface {
	// OperationDone is called once per public operation with its outcome.
	OperationDone(op string, err error)
	// BytesAllocated is called when a scope accounts for n new bytes.
	BytesAllocated(n int)
	// BytesReleased is called when a scope gives back n bytes.
	BytesReleased(n int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OperationDone(string, error) {}
func (NopObserver) BytesAllocated(int)          {}
func (NopObserver) BytesReleased(int)           {}

// Option configures a value, or the scope created for it, during construction.
type Option func(*settings)

type settings struct {
	capacity    int
	content     []byte
	hasContent  bool
	slabSize    int
	memoryLimit int
	observer    Observer
	logger      logging.Logger
}

func defaultSettings() settings {
	return settings{
		capacity: DefaultCapacity,
		slabSize: DefaultSlabSize,
		observer: NopObserver{},
		logger:   logging.NewNopLogger(),
	}
}

// WithCapacity sets the number of zero-filled bytes of a new value.
func WithCapacity(n int) Option {
	return func(s *settings) { s.capacity = n }
}

// WithBytes copies b (little-endian) into the new value. It overrides
// WithCapacity. An empty b yields the single-byte zero.
func WithBytes(b []byte) Option {
	return func(s *settings) {
		s.content = b
		s.hasContent = true
	}
}

// WithSlabSize sets the arena slab size of a new scope. Zero disables the
// slab and every block comes from the heap.
func WithSlabSize(n int) Option {
	return func(s *settings) { s.slabSize = n }
}

// WithMemoryLimit caps the bytes a new scope may hold at once. Zero means
// unlimited. The slab reservation itself is not counted.
func WithMemoryLimit(n int) Option {
	return func(s *settings) { s.memoryLimit = n }
}

// WithObserver attaches an Observer to a new scope.
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger attaches a logger to a new scope.
func WithLogger(l logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
