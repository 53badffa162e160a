package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the seed of a generated passenger file. The same key and
// generator settings always produce the same passengers.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random streams drawn by the passenger generator.
const (
	// SubsystemClassMix picks each passenger's fare class. It is seeded with
	// the key itself.
	SubsystemClassMix = "class_mix"

	// SubsystemArrivals draws the gaps between consecutive arrivals.
	SubsystemArrivals = "arrivals"
)

// SubsystemService names the stream drawing service times for class c.
func SubsystemService(c FareClass) string {
	return fmt.Sprintf("service_%s", c)
}

// PartitionedRNG hands out one *rand.Rand per named stream. Each stream is
// seeded from the key and its name, so switching the business service
// distribution leaves arrival times, the class mix and economy service times
// untouched. Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// SubsystemClassMix is seeded with the key; any other stream with the key
// XOR the FNV-1a hash of its name.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemClassMix {
		seed ^= nameHash(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// Key returns the key the streams derive from.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func nameHash(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}
