package engine

// Kind identifies which lifecycle operation a batch performs.
type Kind int

const (
	StopContainer Kind = iota
	StartContainer
	RemoveContainer
	RemoveImage
)

// defaultStopTimeout is the grace period handed to the daemon when the
// operation does not carry one.
const defaultStopTimeout uint = 10

// String returns the CLI-facing name of the operation, also used as the
// metrics label.
func (k Kind) String() string {
	switch k {
	case StopContainer:
		return "stop"
	case StartContainer:
		return "start"
	case RemoveContainer:
		return "rm"
	case RemoveImage:
		return "rmi"
	default:
		return "unknown"
	}
}

// verb is the word used in aggregate error messages ("failed to stop ...").
func (k Kind) verb() string {
	switch k {
	case StopContainer:
		return "stop"
	case StartContainer:
		return "start"
	default:
		return "remove"
	}
}

// resource is the noun used in aggregate error messages.
func (k Kind) resource() string {
	if k == RemoveImage {
		return "image"
	}
	return "container"
}

// absenceSatisfies reports whether a missing resource counts as the desired
// state. Starting a container that does not exist is a failure; for the
// stop and remove family the end state already holds.
func (k Kind) absenceSatisfies() bool {
	return k != StartContainer
}

// Operation describes one batch: the kind plus its per-target settings.
type Operation struct {
	Kind Kind

	// Force applies to the remove operations: remove a running container,
	// remove a referenced image.
	Force bool

	// TimeoutSeconds is the stop grace period; zero means the default.
	TimeoutSeconds uint
}

func (op Operation) timeout() uint {
	if op.TimeoutSeconds == 0 {
		return defaultStopTimeout
	}
	return op.TimeoutSeconds
}
