package biguint

import (
	"math"

	apperrors "github.com/agbru/biguint/internal/errors"
	"github.com/agbru/biguint/internal/logging"
)

// Scope is the allocation lifetime shared by a value and every helper value
// created on its behalf. Blocks are bump-allocated from a slab; when the slab
// is exhausted they fall back to the heap. All bytes are accounted against
// the optional memory limit and are given back together by Destroy.
//
// Blocks are released in any order. Releasing the block at the top of the
// slab pops it so the space can be reused; other slab blocks stay reserved
// until the scope is destroyed.
type Scope struct {
	slab     []byte
	offset   int
	limit    int
	inUse    int
	peak     int
	released bool

	cfg      settings
	observer Observer
	logger   logging.Logger
}

func newScope(cfg settings) *Scope {
	s := &Scope{
		limit:    cfg.memoryLimit,
		cfg:      cfg,
		observer: cfg.observer,
		logger:   cfg.logger,
	}
	if cfg.slabSize > 0 {
		s.slab = make([]byte, cfg.slabSize)
	}
	return s
}

// New creates a value owned by s. Scope-level options (slab size, limit,
// observer, logger) are ignored; the value lives and dies with s.
func (s *Scope) New(opts ...Option) (*Uint, error) {
	if s.released {
		return nil, apperrors.ErrReleased
	}
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	return s.newValue(cfg)
}

// Destroy releases every byte held by the scope. Values owned by the scope
// must not be used afterwards; operations on them report ErrReleased.
// Destroying a scope twice returns ErrReleased.
func (s *Scope) Destroy() error {
	if s.released {
		return apperrors.ErrReleased
	}
	freed := s.inUse
	s.released = true
	s.slab = nil
	s.offset = 0
	s.inUse = 0
	s.observer.BytesReleased(freed)
	s.logger.Debug("scope destroyed", logging.Int("bytes", freed), logging.Int("peak", s.peak))
	return nil
}

// Released reports whether Destroy has been called.
func (s *Scope) Released() bool { return s.released }

// InUse returns the number of bytes currently accounted to the scope.
func (s *Scope) InUse() int { return s.inUse }

// Peak returns the largest InUse value observed over the scope's lifetime.
func (s *Scope) Peak() int { return s.peak }

// SlabUsed returns how many slab bytes are currently handed out.
func (s *Scope) SlabUsed() int { return s.offset }

// reserve accounts for n more bytes, failing when the limit would be exceeded.
func (s *Scope) reserve(n int) error {
	if n < 0 || s.inUse > math.MaxInt-n {
		return apperrors.MemoryError{Requested: uint64(max(n, 0)), Limit: uint64(s.limit)}
	}
	if s.limit > 0 && s.inUse+n > s.limit {
		return apperrors.MemoryError{
			Requested: uint64(n),
			Available: uint64(max(s.limit-s.inUse, 0)),
			Limit:     uint64(s.limit),
		}
	}
	s.inUse += n
	if s.inUse > s.peak {
		s.peak = s.inUse
	}
	s.observer.BytesAllocated(n)
	return nil
}

// alloc returns a block of exactly n bytes of capacity and zero length,
// together with its slab offset (-1 for heap blocks).
func (s *Scope) alloc(n int) ([]byte, int, error) {
	if err := s.reserve(n); err != nil {
		return nil, -1, err
	}
	if s.slab != nil && n <= len(s.slab)-s.offset {
		off := s.offset
		s.offset += n
		return s.slab[off:off : off+n], off, nil
	}
	return make([]byte, 0, n), -1, nil
}

// extend grows the block at off in place to newCap bytes of capacity. It
// succeeds only for the top block of the slab when the slab has room.
func (s *Scope) extend(buf []byte, off, newCap int) ([]byte, bool) {
	if off < 0 || off+cap(buf) != s.offset || newCap > len(s.slab)-off {
		return nil, false
	}
	if err := s.reserve(newCap - cap(buf)); err != nil {
		return nil, false
	}
	s.offset = off + newCap
	return s.slab[off : off+len(buf) : off+newCap], true
}

// free gives the block back to the scope.
func (s *Scope) free(buf []byte, off int) {
	if s.released || buf == nil {
		return
	}
	n := cap(buf)
	s.inUse -= n
	if off >= 0 && off+n == s.offset {
		s.offset = off
	}
	s.observer.BytesReleased(n)
}

// newValue builds a value on s from already-resolved value settings.
func (s *Scope) newValue(cfg settings) (*Uint, error) {
	n := cfg.capacity
	if cfg.hasContent {
		n = max(len(cfg.content), 1)
	}
	if n < 1 {
		return nil, apperrors.ValidationError{Field: "capacity", Message: "must be at least 1 byte"}
	}
	buf, off, err := s.alloc(n)
	if err != nil {
		s.logger.Error("allocation failed", err, logging.Int("requested", n))
		return nil, err
	}
	z := &Uint{buf: buf, off: off, scope: s}
	z.buf = z.buf[:n]
	clear(z.buf)
	if cfg.hasContent {
		copy(z.buf, cfg.content)
	}
	return z, nil
}

// temp allocates an n-byte zero helper value for the duration of an
// operation. The caller releases it with release.
func (s *Scope) temp(n int) (*Uint, error) {
	buf, off, err := s.alloc(n)
	if err != nil {
		return nil, err
	}
	buf = buf[:n]
	clear(buf)
	return &Uint{buf: buf, off: off, scope: s}, nil
}
