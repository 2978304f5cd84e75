package chip8

// Opcode field extraction. All instructions are 16 bit words, the fields overlap:
//
//	nnn: 0x0FFF  12-bit address or immediate
//	kk:  0x00FF  8-bit immediate
//	n:   0x000F  low nibble, sprite height
//	x:   0x0F00  first register index
//	y:   0x00F0  second register index

func opNNN(opcode uint16) uint16 {
	return opcode & 0x0FFF
}

func opKK(opcode uint16) uint8 {
	return uint8(opcode & 0x00FF)
}

func opN(opcode uint16) uint8 {
	return uint8(opcode & 0x000F)
}

func opX(opcode uint16) uint8 {
	return uint8((opcode & 0x0F00) >> 8)
}

func opY(opcode uint16) uint8 {
	return uint8((opcode & 0x00F0) >> 4)
}

// vx returns the value of the register selected by the x field.
func (s *State) vx(opcode uint16) uint8 {
	return s.V(opX(opcode))
}

// vy returns the value of the register selected by the y field.
func (s *State) vy(opcode uint16) uint8 {
	return s.V(opY(opcode))
}
