package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction identifies one of the documented CHIP-8 instruction semantics.
type Instruction uint8

// Instruction tags, the comment shows the opcode pattern.
const (
	InvalidInstruction Instruction = iota
	ClearScreen                    // 00E0
	Return                         // 00EE
	Jump                           // 1nnn
	Call                           // 2nnn
	SkipEqualImmediate             // 3xkk
	SkipNotEqualImmediate          // 4xkk
	SkipEqualRegister              // 5xy0
	LoadImmediate                  // 6xkk
	AddImmediate                   // 7xkk
	LoadRegister                   // 8xy0
	Or                             // 8xy1
	And                            // 8xy2
	Xor                            // 8xy3
	AddRegister                    // 8xy4
	SubRegister                    // 8xy5
	ShiftRight                     // 8xy6
	SubReverse                     // 8xy7
	ShiftLeft                      // 8xyE
	SkipNotEqualRegister           // 9xy0
	LoadIndex                      // Annn
	JumpOffset                     // Bnnn
	Random                         // Cxkk
	Draw                           // Dxyn
	SkipKeyPressed                 // Ex9E
	SkipKeyNotPressed              // ExA1
	LoadDelayTimer                 // Fx07
	WaitKey                        // Fx0A
	SetDelayTimer                  // Fx15
	SetSoundTimer                  // Fx18
	AddIndex                       // Fx1E
	LoadFontGlyph                  // Fx29
	StoreBCD                       // Fx33
	StoreRegisters                 // Fx55
	LoadRegisters                  // Fx65

	instructionCount
)

type instructionInfo struct {
	pattern string
	syntax  string
	ins     *chip8cpu.Instruction
}

var instructionInfos = [instructionCount]instructionInfo{
	ClearScreen:           {"00E0", "", chip8cpu.ClsInst},
	Return:                {"00EE", "", chip8cpu.RetInst},
	Jump:                  {"1nnn", "nnn", chip8cpu.JpInst},
	Call:                  {"2nnn", "nnn", chip8cpu.CallInst},
	SkipEqualImmediate:    {"3xkk", "Vx, kk", chip8cpu.SeInst},
	SkipNotEqualImmediate: {"4xkk", "Vx, kk", chip8cpu.SneInst},
	SkipEqualRegister:     {"5xy0", "Vx, Vy", chip8cpu.SeInst},
	LoadImmediate:         {"6xkk", "Vx, kk", chip8cpu.LdInst},
	AddImmediate:          {"7xkk", "Vx, kk", chip8cpu.AddInst},
	LoadRegister:          {"8xy0", "Vx, Vy", chip8cpu.LdInst},
	Or:                    {"8xy1", "Vx, Vy", chip8cpu.OrInst},
	And:                   {"8xy2", "Vx, Vy", chip8cpu.AndInst},
	Xor:                   {"8xy3", "Vx, Vy", chip8cpu.XorInst},
	AddRegister:           {"8xy4", "Vx, Vy", chip8cpu.AddInst},
	SubRegister:           {"8xy5", "Vx, Vy", chip8cpu.SubInst},
	ShiftRight:            {"8xy6", "Vx, Vy", chip8cpu.ShrInst},
	SubReverse:            {"8xy7", "Vx, Vy", chip8cpu.SubnInst},
	ShiftLeft:             {"8xyE", "Vx, Vy", chip8cpu.ShlInst},
	SkipNotEqualRegister:  {"9xy0", "Vx, Vy", chip8cpu.SneInst},
	LoadIndex:             {"Annn", "I, nnn", chip8cpu.LdInst},
	JumpOffset:            {"Bnnn", "V0, nnn", chip8cpu.JpInst},
	Random:                {"Cxkk", "Vx, kk", chip8cpu.RndInst},
	Draw:                  {"Dxyn", "Vx, Vy, n", chip8cpu.DrwInst},
	SkipKeyPressed:        {"Ex9E", "Vx", chip8cpu.SkpInst},
	SkipKeyNotPressed:     {"ExA1", "Vx", chip8cpu.SknpInst},
	LoadDelayTimer:        {"Fx07", "Vx, DT", chip8cpu.LdInst},
	WaitKey:               {"Fx0A", "Vx, K", chip8cpu.LdInst},
	SetDelayTimer:         {"Fx15", "DT, Vx", chip8cpu.LdInst},
	SetSoundTimer:         {"Fx18", "ST, Vx", chip8cpu.LdInst},
	AddIndex:              {"Fx1E", "I, Vx", chip8cpu.AddInst},
	LoadFontGlyph:         {"Fx29", "F, Vx", chip8cpu.LdInst},
	StoreBCD:              {"Fx33", "B, Vx", chip8cpu.LdInst},
	StoreRegisters:        {"Fx55", "[I], Vx", chip8cpu.LdInst},
	LoadRegisters:         {"Fx65", "Vx, [I]", chip8cpu.LdInst},
}

// Valid returns whether the tag names a documented instruction.
func (i Instruction) Valid() bool {
	return i > InvalidInstruction && i < instructionCount
}

// Pattern returns the opcode pattern of the instruction, for example "8xy4".
func (i Instruction) Pattern() string {
	if !i.Valid() {
		return ""
	}
	return instructionInfos[i].pattern
}

// Mnemonic returns the assembler mnemonic of the instruction.
func (i Instruction) Mnemonic() string {
	if !i.Valid() {
		return ""
	}
	return instructionInfos[i].ins.Name
}

// String returns the mnemonic followed by the operand syntax, for example "ADD Vx, Vy".
func (i Instruction) String() string {
	if !i.Valid() {
		return "invalid"
	}
	info := instructionInfos[i]
	if info.syntax == "" {
		return info.ins.Name
	}
	return info.ins.Name + " " + info.syntax
}

// IsSkip returns whether the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	if !i.Valid() {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(instructionInfos[i].ins.Name)
}
