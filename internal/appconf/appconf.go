// Package appconf holds application-level configuration shared by the
// CLI commands.
package appconf

// Environment describes the runtime environment of the application.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps a CLI flag value to an Environment,
// defaulting to Development for unrecognized values.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "test":
		return Test
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// Config holds global application settings.
type Config struct {
	Env     Environment
	Verbose bool
}
