package terminal

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"APPVEYOR",               // AppVeyor
	"BUILDKITE",              // Buildkite
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure DevOps
}

// IsCI reports whether the process runs under a CI system.
// CI=false, CI=0 and CI=no do not count.
func (e Environment) IsCI() bool {
	for _, name := range ciEnvVars {
		value := e.getenv(name)
		if value == "" {
			continue
		}
		if name == "CI" {
			return !isFalsy(value)
		}
		return true
	}
	return false
}

// IsInteractive applies the interactive mode priority: command line options,
// then CI detection, then whether fd is a terminal.
func (e Environment) IsInteractive(opts Options, fd int) bool {
	if opts.ForceInteractive {
		return true
	}
	if opts.ForceNonInteractive {
		return false
	}
	if e.IsCI() {
		return false
	}
	return e.IsTerminal(fd)
}
