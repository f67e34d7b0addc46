package terminal

import "strings"

// colorTerminals lists TERM values (or prefixes) that are known to support
// basic terminal colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// TermSupportsColor checks TERM against the known color capable terminals.
// Unknown terminals get no color.
func (e Environment) TermSupportsColor() bool {
	value := strings.ToLower(strings.TrimSpace(e.getenv("TERM")))
	if value == "" || value == "dumb" {
		return false
	}
	for _, t := range colorTerminals {
		if value == t || strings.HasPrefix(value, t+"-") {
			return true
		}
	}
	return false
}

// ExplicitColor returns the color choice made by the user, if any. Command
// line options win over CLICOLOR_FORCE, which wins over NO_COLOR.
func (e Environment) ExplicitColor(opts Options) (enabled, explicit bool) {
	switch {
	case opts.ForceColor:
		return true, true
	case opts.DisableColor:
		return false, true
	case isTruthy(e.getenv("CLICOLOR_FORCE")):
		return true, true
	case e.isSet("NO_COLOR"):
		return false, true
	}
	return false, false
}

// ColorFor decides whether output written to fd may be colored.
func (e Environment) ColorFor(opts Options, fd int) bool {
	if enabled, explicit := e.ExplicitColor(opts); explicit {
		return enabled
	}
	if e.IsCI() || !e.IsTerminal(fd) || !e.TermSupportsColor() {
		return false
	}
	// CLICOLOR only applies when attached to a terminal
	if cliColor := e.getenv("CLICOLOR"); cliColor != "" {
		return isTruthy(cliColor)
	}
	return true
}
