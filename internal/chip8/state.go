package chip8

// State holds all mutable machine state: memory, registers, stack, timers, program counter,
// keypad and framebuffer. It contains no instruction semantics.
type State struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16
	stack  [StackSize]uint16
	sp     int

	delayTimer uint8
	soundTimer uint8

	screen Framebuffer
	keys   Keypad
}

// NewState returns a state in its power-on configuration.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset zeroes all state, copies the font into low memory and sets PC to ProgramStart.
func (s *State) Reset() {
	*s = State{}
	copy(s.memory[:], fontSet[:])
	s.pc = ProgramStart
}

// PC returns the program counter.
func (s *State) PC() uint16 {
	return s.pc
}

// SetPC sets the program counter.
func (s *State) SetPC(address uint16) {
	s.pc = address
}

// Skip advances the program counter by one instruction.
func (s *State) Skip() {
	s.pc += opcodeSize
}

// Fetch returns the big-endian instruction word at PC.
func (s *State) Fetch() (uint16, error) {
	data, err := s.memoryRange(int(s.pc), opcodeSize)
	if err != nil {
		return 0, err
	}
	return uint16(data[0])<<8 | uint16(data[1]), nil
}

// V returns the value of register V0-VF.
func (s *State) V(index uint8) uint8 {
	return s.v[index&0x0F]
}

// SetV sets the value of register V0-VF.
func (s *State) SetV(index, value uint8) {
	s.v[index&0x0F] = value
}

// I returns the index register.
func (s *State) I() uint16 {
	return s.i
}

// SetI sets the index register.
func (s *State) SetI(value uint16) {
	s.i = value
}

// DelayTimer returns the delay timer value.
func (s *State) DelayTimer() uint8 {
	return s.delayTimer
}

// SetDelayTimer sets the delay timer value.
func (s *State) SetDelayTimer(value uint8) {
	s.delayTimer = value
}

// SoundTimer returns the sound timer value.
func (s *State) SoundTimer() uint8 {
	return s.soundTimer
}

// SetSoundTimer sets the sound timer value.
func (s *State) SetSoundTimer(value uint8) {
	s.soundTimer = value
}

// tickTimers decrements both timers if they are not zero and returns whether the
// sound timer expired during this tick.
func (s *State) tickTimers() bool {
	if s.delayTimer > 0 {
		s.delayTimer--
	}
	if s.soundTimer == 0 {
		return false
	}
	s.soundTimer--
	return s.soundTimer == 0
}

// SP returns the stack pointer, the number of return addresses on the stack.
func (s *State) SP() int {
	return s.sp
}

// Push stores a return address on the stack.
func (s *State) Push(address uint16) error {
	if s.sp >= StackSize {
		return &StackFault{Overflow: true}
	}
	s.stack[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *State) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, &StackFault{}
	}
	s.sp--
	return s.stack[s.sp], nil
}

// ReadMemory returns the byte at the given address.
func (s *State) ReadMemory(address int) (byte, error) {
	data, err := s.memoryRange(address, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// WriteMemory copies data into memory starting at the given address.
// Nothing is written if any byte would land outside of memory.
func (s *State) WriteMemory(address int, data ...byte) error {
	dst, err := s.memoryRange(address, len(data))
	if err != nil {
		return err
	}
	copy(dst, data)
	return nil
}

// memoryRange returns the memory slice [address, address+length) or a
// MemoryFault that names the first address outside of memory.
func (s *State) memoryRange(address, length int) ([]byte, error) {
	switch {
	case address < 0:
		return nil, &MemoryFault{Address: address}
	case address+length > MemorySize:
		first := max(address, MemorySize)
		return nil, &MemoryFault{Address: first}
	}
	return s.memory[address : address+length], nil
}

// load copies a program to ProgramStart. The state is only modified if the
// program fits into memory.
func (s *State) load(program []byte) error {
	if len(program) > MaxROMSize {
		return &LoadError{Size: len(program), Err: ErrROMTooLarge}
	}
	s.Reset()
	copy(s.memory[ProgramStart:], program)
	return nil
}

// Keypad returns the keypad state.
func (s *State) Keypad() *Keypad {
	return &s.keys
}

// Screen returns the framebuffer.
func (s *State) Screen() *Framebuffer {
	return &s.screen
}
