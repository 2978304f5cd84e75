package chip8

// DefaultRate is the default number of instructions executed per second.
const DefaultRate = 500

// Quirks select between behaviors that differ across CHIP-8 interpreter lineages.
type Quirks struct {
	// ShiftSourceVy makes 8xy6 and 8xyE shift Vy and store the result in Vx.
	// By default Vx is shifted in place.
	ShiftSourceVy bool
	// LoadStoreIncrementsI makes Fx55 and Fx65 leave I pointing past the last
	// transferred register, as the COSMAC VIP interpreter did.
	LoadStoreIncrementsI bool
}

// RandomSource provides the random numbers for the RND instruction.
type RandomSource interface {
	Uint32() uint32
}

// Options controls the virtual machine.
type Options struct {
	// Rate is the number of instructions executed per second, 0 disables pacing.
	Rate uint
	// Quirks selects the behavior of ambiguous instructions.
	Quirks Quirks
	// Random is used by RND. If nil, a generator seeded with Seed is created.
	Random RandomSource
	// Seed for the default random generator, 0 seeds from the current time.
	Seed uint64
}
