package cpu

import "fmt"

// UnimplementedOpcodeError is returned when Step fetches a byte with no
// dispatch-table entry. It is fatal by design: continuing would corrupt
// program state silently, so the Emulator aborts the frame on this error.
type UnimplementedOpcodeError struct {
	Op byte
	PC uint16
}

func (e *UnimplementedOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unimplemented opcode 0x%02X at PC=0x%04X", e.Op, e.PC)
}
