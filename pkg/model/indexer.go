package model

// indexer gives a unique SAT variable to a (group, slot) pair and vice versa
type indexer interface {
	// Returns a unique index (starting at 1) to a combination of group and slot
	Index(group, slot uint64) uint64
	// Returns the combination of group and slot from a unique index
	Attributes(index uint64) (group, slot uint64)
}

func newIndexer(slots uint64) indexer {
	return &indexerImplementation{slots: slots}
}

type indexerImplementation struct {
	slots uint64
}

func (indexer *indexerImplementation) Index(group, slot uint64) uint64 {
	return slot + indexer.slots*group + 1
}

func (indexer *indexerImplementation) Attributes(index uint64) (group, slot uint64) {
	index = index - 1
	slot = index % indexer.slots
	group = index / indexer.slots
	return group, slot
}
