package chip8

// Memory layout and hardware dimensions.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the largest program that fits between ProgramStart and the end of memory.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// StackSize is the number of nested calls the stack can hold.
	StackSize = 16

	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16

	// ScreenWidth is the framebuffer width in pixels.
	ScreenWidth = 64

	// ScreenHeight is the framebuffer height in pixels.
	ScreenHeight = 32
)

const (
	flagRegister  = 0xF
	opcodeSize    = 2
	fontGlyphSize = 5
)

// fontSet contains the hexadecimal glyphs 0-F, 4 pixels wide and 5 rows high.
var fontSet = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}
