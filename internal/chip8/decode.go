package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeMatch holds the fixed nibbles of an instruction pattern.
type opcodeMatch struct {
	mask  uint16
	value uint16
}

var (
	// patternMatches is indexed by instruction tag.
	patternMatches = buildPatternMatches()

	// candidates maps a mnemonic of the opcode table to the instruction tags
	// that share it, LD for example names ten tags.
	candidates = buildCandidates()
)

func buildPatternMatches() [instructionCount]opcodeMatch {
	var matches [instructionCount]opcodeMatch
	for ins := ClearScreen; ins < instructionCount; ins++ {
		matches[ins] = patternMatch(instructionInfos[ins].pattern)
	}
	return matches
}

func buildCandidates() map[string][]Instruction {
	m := make(map[string][]Instruction)
	for ins := ClearScreen; ins < instructionCount; ins++ {
		name := instructionInfos[ins].ins.Name
		m[name] = append(m[name], ins)
	}
	return m
}

// patternMatch converts a pattern like "8xyE" to its mask and value.
// Lowercase letters are operand nibbles.
func patternMatch(pattern string) opcodeMatch {
	var m opcodeMatch
	for i, c := range pattern {
		shift := 12 - 4*i
		var nibble uint16
		switch {
		case c >= '0' && c <= '9':
			nibble = uint16(c - '0')
		case c >= 'A' && c <= 'F':
			nibble = uint16(c-'A') + 10
		default:
			continue
		}
		m.mask |= 0xF << shift
		m.value |= nibble << shift
	}
	return m
}

// matches returns whether the opcode matches the pattern of the instruction.
func (i Instruction) matches(opcode uint16) bool {
	if !i.Valid() {
		return false
	}
	m := patternMatches[i]
	return opcode&m.mask == m.value
}

// Decode maps an opcode to its instruction. The high nibble selects the opcode
// group of the CPU table, a matching entry is resolved to the instruction whose
// pattern fits the opcode. Opcodes that match no documented pattern return a
// DecodeError, machine code calls (0nnn) are not supported.
func Decode(opcode uint16) (Instruction, error) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8cpu.Opcodes[int(firstNibble)] {
		if op.Instruction == nil || op.Info.Mask&opcode != op.Info.Value {
			continue
		}
		for _, ins := range candidates[op.Instruction.Name] {
			if ins.matches(opcode) {
				return ins, nil
			}
		}
	}
	return InvalidInstruction, &DecodeError{Opcode: opcode}
}
