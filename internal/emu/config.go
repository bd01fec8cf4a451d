package emu

// Config contains settings that affect emulation behavior but not its
// output for a given ROM and input sequence.
type Config struct {
	Trace bool // log the loaded ROM header and each CPU step's cycle count, for debugging
}
