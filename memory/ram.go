// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memory implements the byte-addressable memory image the CPU
// loads from and stores to.
package memory

import (
	"iter"
	"log"
	"maps"
	"math/bits"
	"math/rand"
	"slices"
)

const (
	PAGE_BITS = 12             // Page size, as a power of two.
	PAGE_SIZE = 1 << PAGE_BITS // Bytes per page.
	PAGE_MASK = PAGE_SIZE - 1  // Mask of the offset within a page.
)

// Page is a single page of memory.
type Page [PAGE_SIZE]uint8

// Ram is a sparse 32-bit address space. Pages are allocated on first
// write; bytes never written read as zero.
type Ram struct {
	Verbose     bool // Set to enable verbose logging of writes.
	BitsFlipped int  // Bits changed by writes since the last Reset.

	pages map[uint32](*Page)
}

// NewRam creates an empty memory image.
func NewRam() (ram *Ram) {
	ram = &Ram{}

	ram.Reset()

	return
}

// Reset discards all pages.
func (ram *Ram) Reset() {
	ram.pages = make(map[uint32](*Page))
	ram.BitsFlipped = 0
}

// Randomize fills every allocated page with random contents.
func (ram *Ram) Randomize(seed int) {
	rands := rand.New(rand.NewSource(int64(seed)))
	for _, page := range ram.pages {
		for n := range page {
			page[n] = uint8(rands.Uint32())
		}
	}
}

// GetByte returns the byte at address.
func (ram *Ram) GetByte(address uint32) (value uint8) {
	page, ok := ram.pages[address>>PAGE_BITS]
	if ok {
		value = page[address&PAGE_MASK]
	}
	return
}

// SetByte writes the byte at address, allocating its page if needed.
func (ram *Ram) SetByte(address uint32, value uint8) {
	if ram.pages == nil {
		ram.pages = make(map[uint32](*Page))
	}

	page, ok := ram.pages[address>>PAGE_BITS]
	if !ok {
		if value == 0 {
			// Unallocated pages already read as zero.
			return
		}
		page = &Page{}
		ram.pages[address>>PAGE_BITS] = page
	}

	old := page[address&PAGE_MASK]
	page[address&PAGE_MASK] = value
	ram.BitsFlipped += bits.OnesCount8(old ^ value)

	if ram.Verbose {
		log.Printf("ram: [0x%08x] 0x%02x -> 0x%02x", address, old, value)
	}
}

// Load copies data into memory starting at address. The address wraps at
// the top of the 32-bit space.
func (ram *Ram) Load(address uint32, data []uint8) {
	for n, value := range data {
		ram.SetByte(address+uint32(n), value)
	}
}

// Read copies length bytes starting at address out of memory.
func (ram *Ram) Read(address uint32, length int) (data []uint8) {
	data = make([]uint8, length)
	for n := range data {
		data[n] = ram.GetByte(address + uint32(n))
	}
	return
}

// Pages returns the allocated page base addresses in ascending order.
func (ram *Ram) Pages() iter.Seq[uint32] {
	return func(yield func(base uint32) bool) {
		for _, index := range slices.Sorted(maps.Keys(ram.pages)) {
			if !yield(index << PAGE_BITS) {
				return
			}
		}
	}
}
