package board

// MoveCacheKey identifies one cached moves() query (spec.md §5): the
// position digest, whether the result is legality-filtered, and an
// optional piece/square scope.
type MoveCacheKey struct {
	Hash       uint64
	Legal      bool
	FilterSq   Square
	FilterKind PieceKind
}

// noFilterKey builds a key for an unscoped query.
func noFilterKey(hash uint64, legal bool) MoveCacheKey {
	return MoveCacheKey{Hash: hash, Legal: legal, FilterSq: NoSquare, FilterKind: NoPieceKind}
}

type cacheEntry struct {
	key   MoveCacheKey
	moves []Move
	used  bool
}

// Cache is the pluggable move-cache backend a Game consults: MoveCache
// (the in-memory default) and PersistentMoveCache (the badger-backed
// option) both satisfy it.
type Cache interface {
	Get(key MoveCacheKey) ([]Move, bool)
	Put(key MoveCacheKey, moves []Move) error
	Clear() error
}

var (
	_ Cache = (*MoveCache)(nil)
	_ Cache = (*PersistentMoveCache)(nil)
)

// MoveCache is a direct-mapped, fixed-size move-list cache, mirroring the
// teacher's transposition-table replacement scheme (power-of-two size,
// mask-indexed, newest entry simply overwrites whatever occupied the slot).
// It is explicitly not part of the engine's contract (spec.md §5): callers
// never observe anything except speed from it, and it is invalidated on
// every state-mutating operation.
type MoveCache struct {
	entries []cacheEntry
	mask    uint64
	hits    uint64
	probes  uint64
}

// NewMoveCache returns a cache with capacity rounded down to a power of
// two no larger than maxEntries.
func NewMoveCache(maxEntries int) *MoveCache {
	n := roundDownToPowerOf2(uint64(maxEntries))
	if n == 0 {
		n = 1
	}
	return &MoveCache{entries: make([]cacheEntry, n), mask: n - 1}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Get returns the cached move list for key, if the slot it hashes to still
// holds it.
func (c *MoveCache) Get(key MoveCacheKey) ([]Move, bool) {
	c.probes++
	idx := key.Hash & c.mask
	e := c.entries[idx]
	if e.used && e.key == key {
		c.hits++
		return e.moves, true
	}
	return nil, false
}

// Put stores moves under key, evicting whatever previously occupied the
// slot. Always succeeds; the error return exists to satisfy Cache.
func (c *MoveCache) Put(key MoveCacheKey, moves []Move) error {
	idx := key.Hash & c.mask
	c.entries[idx] = cacheEntry{key: key, moves: moves, used: true}
	return nil
}

// Clear invalidates every entry (spec.md §5: invalidated on any
// state-mutating op). Always succeeds; the error return exists to satisfy
// Cache.
func (c *MoveCache) Clear() error {
	for i := range c.entries {
		c.entries[i] = cacheEntry{}
	}
	return nil
}

// HitRate returns the cache's lifetime hit ratio, for diagnostics.
func (c *MoveCache) HitRate() float64 {
	if c.probes == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.probes)
}
