package memory

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRam(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam()

	// Unwritten memory reads as zero, without allocating.
	assert.Equal(uint8(0), ram.GetByte(0x1234_5678))
	ram.SetByte(0x1234_5678, 0)
	assert.Empty(slices.Collect(ram.Pages()))
	assert.Equal(0, ram.BitsFlipped)

	ram.SetByte(0x1234_5678, 0xff)
	assert.Equal(uint8(0xff), ram.GetByte(0x1234_5678))
	assert.Equal(8, ram.BitsFlipped)
	ram.SetByte(0x1234_5678, 0x0f)
	assert.Equal(12, ram.BitsFlipped)

	assert.Equal([]uint32{0x1234_5000}, slices.Collect(ram.Pages()))

	ram.Reset()
	assert.Equal(uint8(0), ram.GetByte(0x1234_5678))
	assert.Equal(0, ram.BitsFlipped)
}

func TestRamLoad(t *testing.T) {
	assert := assert.New(t)

	ram := &Ram{}

	// Loads cross pages and wrap at the top of the address space.
	ram.Load(0xffff_fffe, []uint8{1, 2, 3, 4})
	assert.Equal([]uint8{1, 2, 3, 4}, ram.Read(0xffff_fffe, 4))
	assert.Equal([]uint32{0x0000_0000, 0xffff_f000}, slices.Collect(ram.Pages()))

	ram.Load(0x0000_0ffe, []uint8{5, 6, 7})
	assert.Equal([]uint8{3, 4, 0}, ram.Read(0, 3))
	assert.Equal([]uint8{5, 6, 7, 0}, ram.Read(0x0000_0ffe, 4))
	assert.Equal([]uint32{0x0000_0000, 0x0000_1000, 0xffff_f000}, slices.Collect(ram.Pages()))
}

func TestRamRandomize(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam()
	ram.SetByte(0x100, 1)

	ram.Randomize(1)
	first := ram.Read(0, PAGE_SIZE)

	ram.Randomize(1)
	assert.Equal(first, ram.Read(0, PAGE_SIZE))

	ram.Randomize(2)
	assert.NotEqual(first, ram.Read(0, PAGE_SIZE))

	// Only allocated pages are filled.
	assert.Equal(uint8(0), ram.GetByte(PAGE_SIZE))
}
