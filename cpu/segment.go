package cpu

// Conventional MIPS memory layout.
const (
	SEGMENT_TEXT  = 0x0040_0000 // User code.
	SEGMENT_DATA  = 0x1001_0000 // Static data.
	SEGMENT_GP    = 0x1000_8000 // Initial global pointer.
	SEGMENT_STACK = 0x7fff_effc // Initial stack pointer.
	SEGMENT_MASK  = 0xf000_0000 // Region selected by the top four PC bits.
)
