package terminal

import "os"

// Options contains the command line choices that affect terminal output
type Options struct {
	ForceInteractive    bool // -interactive
	ForceNonInteractive bool // -quiet
	ForceColor          bool // -color
	DisableColor        bool // -no-color
}

// Capabilities is the resolved terminal behaviour for one run
type Capabilities struct {
	// Interactive selects the human friendly log handler on stderr
	Interactive bool
	// LogColor enables ANSI color in interactive log lines
	LogColor bool
	// ReportColor enables ANSI color in the conversion report on stdout
	ReportColor bool
	// ExplicitColor is true when the color choice came from the user
	ExplicitColor bool
}

// Detect resolves capabilities for the given stdout and stderr descriptors.
func Detect(env Environment, opts Options, stdoutFD, stderrFD int) Capabilities {
	_, explicit := env.ExplicitColor(opts)
	interactive := env.IsInteractive(opts, stderrFD)
	return Capabilities{
		Interactive:   interactive,
		LogColor:      interactive && env.ColorFor(opts, stderrFD),
		ReportColor:   env.ColorFor(opts, stdoutFD),
		ExplicitColor: explicit,
	}
}

// DetectSystem resolves capabilities for the real os.Stdout and os.Stderr.
func DetectSystem(opts Options) Capabilities {
	return Detect(SystemEnvironment(), opts, int(os.Stdout.Fd()), int(os.Stderr.Fd()))
}
