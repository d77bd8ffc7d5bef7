// Package buildinfo carries version metadata stamped at link time:
//
//	-X 'github.com/m3rciful/counterbot/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/m3rciful/counterbot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/counterbot/core/buildinfo.Date=2025-08-30T12:00:00Z'
package buildinfo

// Defaults describe a local development build.
var (
	Version = "dev"
	Commit  = "local"
	Date    = ""
)
