package bus

// Joypad is the host-visible snapshot of which buttons are currently
// pressed. The host sets it between frames via Bus.SetJoypad; the core
// reads a consistent snapshot whenever 0xFF00 is read.
type Joypad struct {
	Up, Down, Left, Right bool
	A, B, Start, Select   bool
}
