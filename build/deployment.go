package build

// DeploymentType selects between a development and a production build of the
// command line tool. The dev build tag picks Development.
type DeploymentType byte

const (
	// Development builds log verbosely unless told otherwise.
	Development DeploymentType = iota

	// Production builds only log at info level and above by default.
	Production
)

// String returns a human readable name for a build type.
func (b DeploymentType) String() string {
	switch b {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}

// IsDevBuild returns true if this is a development build.
func IsDevBuild() bool {
	return Deployment == Development
}

// DefaultDebugLevel returns the debug level to use when none is configured.
func DefaultDebugLevel() string {
	if IsDevBuild() {
		return "debug"
	}

	return "info"
}
