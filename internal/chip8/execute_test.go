package chip8

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// step writes the opcode at PC and executes one cycle.
func step(t *testing.T, vm *VM, opcode uint16) error {
	t.Helper()
	pc := int(vm.state.PC())
	assert.NoError(t, vm.state.WriteMemory(pc, uint8(opcode>>8), uint8(opcode)))
	return vm.Cycle(context.Background())
}

func mustStep(t *testing.T, vm *VM, opcode uint16) {
	t.Helper()
	assert.NoError(t, step(t, vm, opcode))
}

func TestExecute_LoadImmediateAllValues(t *testing.T) {
	vm := newTestVM(t, Options{})
	for x := range uint16(RegisterCount) {
		for kk := range uint16(0x100) {
			vm.state.SetPC(ProgramStart)
			mustStep(t, vm, 0x6000|x<<8|kk)
			assert.Equal(t, uint8(kk), vm.state.V(uint8(x)))
		}
	}
}

func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		vx, vy  uint8
		quirks  Quirks
		wantVx  uint8
		wantVF  uint8
		flagSet bool
	}{
		{name: "add immediate wraps", opcode: 0x71FF, vx: 0x02, wantVx: 0x01},
		{name: "load register", opcode: 0x8120, vx: 0x01, vy: 0x33, wantVx: 0x33},
		{name: "or", opcode: 0x8121, vx: 0xF0, vy: 0x0F, wantVx: 0xFF},
		{name: "and", opcode: 0x8122, vx: 0xF3, vy: 0x3F, wantVx: 0x33},
		{name: "xor", opcode: 0x8123, vx: 0xFF, vy: 0x0F, wantVx: 0xF0},
		{name: "add no carry", opcode: 0x8124, vx: 0x10, vy: 0x20, wantVx: 0x30, flagSet: true},
		{name: "add carry", opcode: 0x8124, vx: 0xFF, vy: 0x02, wantVx: 0x01, wantVF: 1, flagSet: true},
		{name: "sub no borrow", opcode: 0x8125, vx: 0x30, vy: 0x10, wantVx: 0x20, wantVF: 1, flagSet: true},
		{name: "sub borrow", opcode: 0x8125, vx: 0x10, vy: 0x30, wantVx: 0xE0, flagSet: true},
		{name: "sub equal", opcode: 0x8125, vx: 0x10, vy: 0x10, wantVx: 0x00, flagSet: true},
		{name: "subn no borrow", opcode: 0x8127, vx: 0x10, vy: 0x30, wantVx: 0x20, wantVF: 1, flagSet: true},
		{name: "subn borrow", opcode: 0x8127, vx: 0x30, vy: 0x10, wantVx: 0xE0, flagSet: true},
		{name: "shr vx", opcode: 0x8126, vx: 0x05, vy: 0x80, wantVx: 0x02, wantVF: 1, flagSet: true},
		{name: "shr vy quirk", opcode: 0x8126, vx: 0x05, vy: 0x80, quirks: Quirks{ShiftSourceVy: true},
			wantVx: 0x40, flagSet: true},
		{name: "shl vx", opcode: 0x812E, vx: 0x81, vy: 0x01, wantVx: 0x02, wantVF: 1, flagSet: true},
		{name: "shl vy quirk", opcode: 0x812E, vx: 0x81, vy: 0x01, quirks: Quirks{ShiftSourceVy: true},
			wantVx: 0x02, flagSet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, Options{Quirks: tt.quirks})
			vm.state.SetV(1, tt.vx)
			vm.state.SetV(2, tt.vy)
			vm.state.SetV(flagRegister, 0xAA)

			mustStep(t, vm, tt.opcode)
			assert.Equal(t, tt.wantVx, vm.state.V(1))
			if tt.flagSet {
				assert.Equal(t, tt.wantVF, vm.state.V(flagRegister))
			} else {
				assert.Equal(t, uint8(0xAA), vm.state.V(flagRegister))
			}
			assert.Equal(t, uint16(ProgramStart+2), vm.state.PC())
		})
	}
}

func TestExecute_FlagRegisterAsTarget(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.SetV(flagRegister, 0xFF)
	vm.state.SetV(1, 0x05)

	// ADD VF, V1 overflows, the flag wins over the sum
	mustStep(t, vm, 0x8F14)
	assert.Equal(t, uint8(1), vm.state.V(flagRegister))
}

func TestExecute_Skips(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		keys   []Key
		skip   bool
	}{
		{name: "se immediate equal", opcode: 0x3142, vx: 0x42, skip: true},
		{name: "se immediate different", opcode: 0x3142, vx: 0x41},
		{name: "sne immediate equal", opcode: 0x4142, vx: 0x42},
		{name: "sne immediate different", opcode: 0x4142, vx: 0x41, skip: true},
		{name: "se register equal", opcode: 0x5120, vx: 7, vy: 7, skip: true},
		{name: "se register different", opcode: 0x5120, vx: 7, vy: 8},
		{name: "sne register equal", opcode: 0x9120, vx: 7, vy: 7},
		{name: "sne register different", opcode: 0x9120, vx: 7, vy: 8, skip: true},
		{name: "skp pressed", opcode: 0xE19E, vx: 0x0A, keys: []Key{KeyA}, skip: true},
		{name: "skp released", opcode: 0xE19E, vx: 0x0A, keys: []Key{KeyB}},
		{name: "skp uses low nibble", opcode: 0xE19E, vx: 0x1A, keys: []Key{KeyA}, skip: true},
		{name: "sknp pressed", opcode: 0xE1A1, vx: 0x05, keys: []Key{Key5}},
		{name: "sknp released", opcode: 0xE1A1, vx: 0x05, skip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, Options{})
			vm.state.SetV(1, tt.vx)
			vm.state.SetV(2, tt.vy)
			for _, key := range tt.keys {
				vm.PressKey(key)
			}

			mustStep(t, vm, tt.opcode)
			want := uint16(ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, vm.state.PC())
		})
	}
}

func TestExecute_JumpsAndCalls(t *testing.T) {
	vm := newTestVM(t, Options{})

	mustStep(t, vm, 0x1345)
	assert.Equal(t, uint16(0x0345), vm.state.PC())

	mustStep(t, vm, 0x2456)
	assert.Equal(t, uint16(0x0456), vm.state.PC())
	assert.Equal(t, 1, vm.state.SP())

	mustStep(t, vm, 0x00EE)
	assert.Equal(t, uint16(0x0347), vm.state.PC())
	assert.Equal(t, 0, vm.state.SP())

	vm.state.SetV(0, 0x10)
	mustStep(t, vm, 0xB300)
	assert.Equal(t, uint16(0x0310), vm.state.PC())
}

func TestExecute_StackLIFO(t *testing.T) {
	vm := newTestVM(t, Options{})
	targets := []uint16{0x300, 0x400, 0x500}
	for _, target := range targets {
		mustStep(t, vm, 0x2000|target)
	}

	for i := len(targets) - 1; i >= 0; i-- {
		mustStep(t, vm, 0x00EE)
		want := ProgramStart + 2
		if i > 0 {
			want = int(targets[i-1]) + 2
		}
		assert.Equal(t, uint16(want), vm.state.PC())
	}
}

func TestExecute_StackOverflow(t *testing.T) {
	vm := newTestVM(t, Options{})
	for range StackSize {
		// CALL to the next instruction
		mustStep(t, vm, 0x2000|(vm.state.PC()+2))
	}
	assert.Equal(t, StackSize, vm.state.SP())

	pc := vm.state.PC()
	err := step(t, vm, 0x2000|(pc+2))
	var stackErr *StackFault
	assert.True(t, errors.As(err, &stackErr))
	assert.True(t, stackErr.Overflow)
	assert.Equal(t, pc, stackErr.PC)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackSize, vm.state.SP())
}

func TestExecute_StackUnderflow(t *testing.T) {
	vm := newTestVM(t, Options{})
	err := step(t, vm, 0x00EE)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.ErrorContains(t, err, "0x00EE")
	assert.Equal(t, uint16(ProgramStart), vm.state.PC())
}

func TestExecute_IndexAndRandom(t *testing.T) {
	vm := newTestVM(t, Options{Random: fixedRandom(0x1234_56F5)})

	mustStep(t, vm, 0xA123)
	assert.Equal(t, uint16(0x0123), vm.state.I())

	vm.state.SetV(3, 0x10)
	mustStep(t, vm, 0xF31E)
	assert.Equal(t, uint16(0x0133), vm.state.I())

	mustStep(t, vm, 0xC40F)
	assert.Equal(t, uint8(0x05), vm.state.V(4))

	vm.state.SetV(5, 0x0B)
	mustStep(t, vm, 0xF529)
	assert.Equal(t, uint16(0x0B*fontGlyphSize), vm.state.I())
}

func TestExecute_Timers(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.SetV(1, 0x20)

	mustStep(t, vm, 0xF115)
	mustStep(t, vm, 0xF118)
	assert.Equal(t, uint8(0x1F), vm.state.DelayTimer())
	assert.Equal(t, uint8(0x20), vm.state.SoundTimer())

	mustStep(t, vm, 0xF207)
	assert.Equal(t, uint8(0x1E), vm.state.V(2))
}

func TestExecute_BCD(t *testing.T) {
	tests := []struct {
		value uint8
		want  []byte
	}{
		{value: 234, want: []byte{2, 3, 4}},
		{value: 9, want: []byte{0, 0, 9}},
		{value: 100, want: []byte{1, 0, 0}},
		{value: 255, want: []byte{2, 5, 5}},
	}

	for _, tt := range tests {
		vm := newTestVM(t, Options{})
		vm.state.SetI(0x300)
		vm.state.SetV(6, tt.value)

		mustStep(t, vm, 0xF633)
		for i, digit := range tt.want {
			got, err := vm.state.ReadMemory(0x300 + i)
			assert.NoError(t, err)
			assert.Equal(t, digit, got)
		}
	}
}

func TestExecute_BCDOutOfMemory(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.SetI(MemorySize - 2)

	err := step(t, vm, 0xF033)
	var memErr *MemoryFault
	assert.True(t, errors.As(err, &memErr))
	assert.Equal(t, MemorySize, memErr.Address)
}

func TestExecute_StoreLoadRegisters(t *testing.T) {
	tests := []struct {
		name   string
		quirks Quirks
		wantI  uint16
	}{
		{name: "index unchanged", wantI: 0x300},
		{name: "index incremented", quirks: Quirks{LoadStoreIncrementsI: true}, wantI: 0x304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, Options{Quirks: tt.quirks})
			for x := range uint8(RegisterCount) {
				vm.state.SetV(x, x+1)
			}
			vm.state.SetI(0x300)

			mustStep(t, vm, 0xF355)
			assert.Equal(t, tt.wantI, vm.state.I())
			for i := range 5 {
				got, err := vm.state.ReadMemory(0x300 + i)
				assert.NoError(t, err)
				if i <= 3 {
					assert.Equal(t, uint8(i+1), got)
				} else {
					assert.Equal(t, uint8(0), got)
				}
			}

			assert.NoError(t, vm.state.WriteMemory(0x400, 0x11, 0x22, 0x33))
			vm.state.SetI(0x400)
			mustStep(t, vm, 0xF165)
			assert.Equal(t, uint8(0x11), vm.state.V(0))
			assert.Equal(t, uint8(0x22), vm.state.V(1))
			assert.Equal(t, uint8(3), vm.state.V(2))
		})
	}
}

func TestExecute_StoreRegistersOutOfMemory(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.SetI(MemorySize - 3)

	err := step(t, vm, 0xF355)
	assert.True(t, errors.Is(err, ErrMemoryAccess))

	// nothing was written
	got, readErr := vm.state.ReadMemory(MemorySize - 1)
	assert.NoError(t, readErr)
	assert.Equal(t, uint8(0), got)
}

func TestExecute_Draw(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.SetI(0) // glyph 0: F0 90 90 90 F0
	vm.state.SetV(1, 2)
	vm.state.SetV(2, 3)

	mustStep(t, vm, 0xD125)
	assert.True(t, vm.DrawNeeded())
	assert.Equal(t, uint8(0), vm.state.V(flagRegister))

	fb := vm.Framebuffer()
	assert.True(t, fb.Pixel(2, 3))
	assert.True(t, fb.Pixel(5, 3))
	assert.False(t, fb.Pixel(6, 3))
	assert.True(t, fb.Pixel(2, 4))
	assert.False(t, fb.Pixel(3, 4))

	mustStep(t, vm, 0x6000)
	assert.False(t, vm.DrawNeeded())

	// drawing the same sprite again restores the screen
	mustStep(t, vm, 0xD125)
	assert.Equal(t, uint8(1), vm.state.V(flagRegister))
	fb = vm.Framebuffer()
	assert.Equal(t, make([]byte, PackedFramebufferSize), fb.Packed())
}

func TestExecute_DrawWrapAndClip(t *testing.T) {
	vm := newTestVM(t, Options{})
	assert.NoError(t, vm.state.WriteMemory(0x300, 0xFF, 0xFF))
	vm.state.SetI(0x300)
	vm.state.SetV(1, 60+ScreenWidth) // wraps to 60
	vm.state.SetV(2, ScreenHeight-1)

	mustStep(t, vm, 0xD122)
	fb := vm.Framebuffer()
	assert.True(t, fb.Pixel(60, ScreenHeight-1))
	assert.True(t, fb.Pixel(63, ScreenHeight-1))
	assert.False(t, fb.Pixel(0, ScreenHeight-1))
	assert.False(t, fb.Pixel(60, 0))
}

func TestExecute_DrawOutOfMemory(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.SetI(MemorySize - 2)

	err := step(t, vm, 0xD003)
	assert.True(t, errors.Is(err, ErrMemoryAccess))
	assert.False(t, vm.DrawNeeded())
}

func TestExecute_WaitKey(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.SetDelayTimer(10)

	for range 3 {
		mustStep(t, vm, 0xF30A)
		assert.True(t, vm.WaitingForKey())
		assert.Equal(t, uint16(ProgramStart), vm.state.PC())
	}
	assert.Equal(t, uint8(7), vm.state.DelayTimer())

	vm.PressKey(KeyE)
	vm.PressKey(Key9)
	mustStep(t, vm, 0xF30A)
	assert.False(t, vm.WaitingForKey())
	assert.Equal(t, uint8(9), vm.state.V(3))
	assert.Equal(t, uint16(ProgramStart+2), vm.state.PC())
}

func TestExecute_ClearScreen(t *testing.T) {
	vm := newTestVM(t, Options{})
	vm.state.Screen().DrawSprite(0, 0, []byte{0xFF})

	mustStep(t, vm, 0x00E0)
	assert.True(t, vm.DrawNeeded())
	assert.Equal(t, uint64(0), vm.state.Screen().Row(0))
}
