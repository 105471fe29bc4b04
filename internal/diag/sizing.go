// Package diag provides memory/CPU-aware spill sizing, colored progress
// reporting, and the stats file written at the end of an indexing run.
//
// Grounded on eutils/utils.go's InitHelp/PrintStats, which reads
// github.com/pbnjay/memory and github.com/klauspost/cpuid to size its own
// worker-pool tunables (numProcs, chanDepth, farmSize) to the host machine;
// this package applies the same inputs to a different knob (PagesPerSpill)
// since the indexer has no worker pool to size.
package diag

import (
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
)

// bytesPerBufferedDocument estimates the accumulator's RAM cost per
// in-flight document: six field posting maps plus the df map, each holding
// several dozen short strings and map overhead per term.
const bytesPerBufferedDocument = 4096

// defaultSpillSize is used when the host's total memory can't be read.
const defaultSpillSize = 15000

// minSpillSize and maxSpillSize bound the recommendation regardless of
// detected memory, so a tiny container and a huge server both get a sane
// accumulator window.
const (
	minSpillSize = 2000
	maxSpillSize = 200000
)

// RecommendSpillSize sizes PagesPerSpill from a RAM budget (bytes) the
// caller is willing to dedicate to the in-memory accumulator. A budget of 0
// asks diag to pick a budget itself from the host's total memory.
func RecommendSpillSize(budgetBytes uint64) int {
	if budgetBytes == 0 {
		total := memory.TotalMemory()
		if total == 0 {
			return defaultSpillSize
		}
		budgetBytes = total / 8
	}

	n := int(budgetBytes / bytesPerBufferedDocument)
	if n < minSpillSize {
		return minSpillSize
	}
	if n > maxSpillSize {
		return maxSpillSize
	}
	return n
}

// HostInfo summarizes the machine's capacity, for the stats file.
type HostInfo struct {
	LogicalCores   int
	ThreadsPerCore int
	TotalMemoryMiB uint64
}

// DetectHost reads the host's CPU and memory characteristics.
func DetectHost() HostInfo {
	return HostInfo{
		LogicalCores:   cpuid.CPU.LogicalCores,
		ThreadsPerCore: cpuid.CPU.ThreadsPerCore,
		TotalMemoryMiB: memory.TotalMemory() / (1024 * 1024),
	}
}
