package reconcile

import (
	"encoding/binary"
	"hash/fnv"
)

// Jitter decides whether an already-active contract gets rewritten this
// pass. It bounds write volume against the record store without being
// load-bearing for correctness: a skipped update converges on a later pass.
// The decision hashes (seed, epoch, key) so a fixed seed makes the cadence
// fully deterministic, while bumping the epoch (e.g. per scheduled run)
// rotates which keys fire.
type Jitter struct {
	Rate  float64
	Seed  uint64
	Epoch uint64
}

func (j Jitter) ShouldUpdate(key string) bool {
	if j.Rate >= 1 {
		return true
	}
	if j.Rate <= 0 {
		return false
	}
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], j.Seed)
	binary.LittleEndian.PutUint64(buf[8:], j.Epoch)
	h.Write(buf[:])
	h.Write([]byte(key))
	const buckets = 10000
	return float64(h.Sum64()%buckets)/buckets < j.Rate
}
