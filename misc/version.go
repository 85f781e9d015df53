// Package misc keeps build time information about the program.
package misc

// Overwritten at link time with -ldflags "-X cssnest/misc.version=...".
var (
	appName = "cssnest"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
