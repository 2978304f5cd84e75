package chip8

// pcUpdate tells the cycle driver what to do with the program counter after
// an instruction was executed.
type pcUpdate uint8

const (
	advancePC  pcUpdate = iota // PC moves to the next instruction
	redirectPC                 // the instruction already set PC
)

// execute runs the semantics of a decoded instruction.
//
//nolint:funlen,cyclop,gocyclo // one case per instruction
func (vm *VM) execute(ins Instruction, opcode uint16) (pcUpdate, error) {
	s := vm.state
	x := opX(opcode)
	vx := s.vx(opcode)
	vy := s.vy(opcode)

	switch ins {
	case ClearScreen:
		s.screen.Clear()
		vm.drawNeeded = true

	case Return:
		address, err := s.Pop()
		if err != nil {
			return redirectPC, err
		}
		s.SetPC(address)
		return redirectPC, nil

	case Jump:
		s.SetPC(opNNN(opcode))
		return redirectPC, nil

	case Call:
		if err := s.Push(s.PC() + opcodeSize); err != nil {
			return redirectPC, err
		}
		s.SetPC(opNNN(opcode))
		return redirectPC, nil

	case SkipEqualImmediate:
		vm.skipIf(vx == opKK(opcode))

	case SkipNotEqualImmediate:
		vm.skipIf(vx != opKK(opcode))

	case SkipEqualRegister:
		vm.skipIf(vx == vy)

	case LoadImmediate:
		s.SetV(x, opKK(opcode))

	case AddImmediate:
		s.SetV(x, vx+opKK(opcode))

	case LoadRegister:
		s.SetV(x, vy)

	case Or:
		s.SetV(x, vx|vy)

	case And:
		s.SetV(x, vx&vy)

	case Xor:
		s.SetV(x, vx^vy)

	case AddRegister:
		sum := uint16(vx) + uint16(vy)
		vm.setWithFlag(x, uint8(sum), sum > 0xFF)

	case SubRegister:
		vm.setWithFlag(x, vx-vy, vx > vy)

	case ShiftRight:
		source := vm.shiftSource(vx, vy)
		vm.setWithFlag(x, source>>1, source&0x01 != 0)

	case SubReverse:
		vm.setWithFlag(x, vy-vx, vy > vx)

	case ShiftLeft:
		source := vm.shiftSource(vx, vy)
		vm.setWithFlag(x, source<<1, source&0x80 != 0)

	case SkipNotEqualRegister:
		vm.skipIf(vx != vy)

	case LoadIndex:
		s.SetI(opNNN(opcode))

	case JumpOffset:
		s.SetPC(uint16(s.V(0)) + opNNN(opcode))
		return redirectPC, nil

	case Random:
		s.SetV(x, uint8(vm.random.Uint32())&opKK(opcode))

	case Draw:
		return advancePC, vm.draw(vx, vy, opN(opcode))

	case SkipKeyPressed:
		vm.skipIf(s.keys.IsPressed(Key(vx & 0x0F)))

	case SkipKeyNotPressed:
		vm.skipIf(!s.keys.IsPressed(Key(vx & 0x0F)))

	case LoadDelayTimer:
		s.SetV(x, s.DelayTimer())

	case WaitKey:
		key, ok := s.keys.FirstPressed()
		vm.waiting = !ok
		if !ok {
			return redirectPC, nil // execute again next cycle
		}
		s.SetV(x, uint8(key))

	case SetDelayTimer:
		s.SetDelayTimer(vx)

	case SetSoundTimer:
		s.SetSoundTimer(vx)

	case AddIndex:
		s.SetI(s.I() + uint16(vx))

	case LoadFontGlyph:
		s.SetI(uint16(vx) * fontGlyphSize)

	case StoreBCD:
		return advancePC, s.WriteMemory(int(s.I()), vx/100, vx/10%10, vx%10)

	case StoreRegisters:
		if err := s.WriteMemory(int(s.I()), s.v[:x+1]...); err != nil {
			return advancePC, err
		}
		vm.advanceIndex(x)

	case LoadRegisters:
		data, err := s.memoryRange(int(s.I()), int(x)+1)
		if err != nil {
			return advancePC, err
		}
		copy(s.v[:x+1], data)
		vm.advanceIndex(x)

	default:
		return advancePC, &DecodeError{Opcode: opcode}
	}

	return advancePC, nil
}

// skipIf skips the next instruction, the regular advance follows after execution.
func (vm *VM) skipIf(condition bool) {
	if condition {
		vm.state.Skip()
	}
}

// setWithFlag writes the result before VF so that VF wins when x is 0xF.
func (vm *VM) setWithFlag(x, value uint8, flag bool) {
	vm.state.SetV(x, value)
	vm.state.SetV(flagRegister, boolToFlag(flag))
}

func (vm *VM) shiftSource(vx, vy uint8) uint8 {
	if vm.quirks.ShiftSourceVy {
		return vy
	}
	return vx
}

func (vm *VM) advanceIndex(x uint8) {
	if vm.quirks.LoadStoreIncrementsI {
		vm.state.SetI(vm.state.I() + uint16(x) + 1)
	}
}

// draw XORs an n byte sprite from memory at I onto the screen at (vx, vy).
func (vm *VM) draw(vx, vy, height uint8) error {
	s := vm.state
	sprite, err := s.memoryRange(int(s.I()), int(height))
	if err != nil {
		return err
	}

	collision := s.screen.DrawSprite(int(vx), int(vy), sprite)
	s.SetV(flagRegister, boolToFlag(collision))
	vm.drawNeeded = true
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
