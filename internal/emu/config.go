package emu

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace    bool // set from the -trace flag; Machine does not read it and logs nothing
	LimitFPS bool // not read by Machine; StepFrame always runs unthrottled

	// HaltOnUndefinedOpcode selects the diagnostic-halt undefined-opcode
	// policy instead of the default treat-as-NOP one.
	HaltOnUndefinedOpcode bool
}
