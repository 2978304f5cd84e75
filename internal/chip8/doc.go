// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted byte-code language from the 1970s. The virtual machine has:
//   - 4KB of memory (0x000-0xFFF), programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as carry/borrow/collision flag
//   - a 16-bit index register I and a 16-bit program counter
//   - a 16 level call stack used only by CALL and RET
//   - delay and sound timers counting down once per cycle
//   - a 64x32 monochrome framebuffer and a 16 key hex keypad
//
// # Memory Layout
//
//	0x000-0x04F: hexadecimal font, 16 glyphs of 5 bytes each
//	0x050-0x1FF: unused, reserved for the COSMAC VIP interpreter
//	0x200-0xFFF: program and data area
//
// # Components
//
// State owns the mutable machine state and offers bounds-checked accessors. The opcode field
// helpers extract nnn, kk, n, x and y from an instruction word. Decode maps an opcode to one of
// the Instruction tags with a two-level dispatch on the high nibble and then the low byte or low
// nibble. VM drives a cycle: pacing, timers, fetch, decode, execute and program counter advance.
//
// # Usage Example
//
//	vm := chip8.New(logger, chip8.Options{Rate: 500})
//	if err := vm.Load(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		if err := vm.Cycle(ctx); err != nil {
//			return err
//		}
//		if vm.DrawNeeded() {
//			render(vm.Framebuffer())
//		}
//	}
//
// # Faults
//
// Unknown opcodes, stack overflows and underflows and memory accesses outside of the 4KB
// address space halt the machine. The fault identifies PC and opcode and is returned by
// every following call to Cycle.
package chip8
