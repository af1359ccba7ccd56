package domain

import "time"

// Unit is one named cache-able unit declared in the config file.
type Unit struct {
	// Name is the key of the unit in the config file.
	Name string
	// Config is the configuration folded into the fingerprint.
	Config Configuration
	// Command is run by the shell builder on a cache miss.
	Command []string
	// WorkingDir is the directory the command runs in.
	WorkingDir string
	// Env holds environment variable overrides for the command.
	Env map[string]string
}

// Project is the parsed config file.
type Project struct {
	// CacheDir is the marker directory shared by all units.
	CacheDir string
	// Units are sorted by name.
	Units []Unit
}

// Unit returns the unit with the given name.
func (p *Project) Unit(name string) (Unit, bool) {
	for _, u := range p.Units {
		if u.Name == name {
			return u, true
		}
	}
	return Unit{}, false
}

// CommandResult is the value a unit's command hands back to the orchestrator as the build result.
type CommandResult struct {
	// ExitCode is the exit status of the command. An empty command reports 0.
	ExitCode int
	// Duration is the wall time the command ran for.
	Duration time.Duration
}
