package cpu

// Status represents the execution state of the CPU. It can be one of
// the following:
//
//   - Running
//   - Halted
//   - Stopped
type Status int

const (
	// Running represents the status of the CPU when it is
	// fetching and executing instructions.
	Running Status = iota
	// Halted represents the status of the CPU after executing
	// HALT. It stays halted until woken up or reset.
	Halted
	// Stopped represents the status of the CPU after executing
	// STOP. It stays stopped until woken up or reset.
	Stopped
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

func (s Status) IsRunning() bool {
	return s == Running
}
