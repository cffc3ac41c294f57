package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL   = "https://mpv.io/installation/"
	YtDlpInstallURL = "https://github.com/yt-dlp/yt-dlp#installation"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// CheckBinary checks that the named binary (or path) is executable from PATH.
func CheckBinary(name, installURL string) error {
	if _, err := exec.LookPath(name); err != nil {
		return &DependencyError{
			Name:       name,
			InstallURL: installURL,
		}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH.
// An empty path means the "mpv" binary.
func CheckMpv(path string) error {
	if path == "" {
		path = "mpv"
	}
	return CheckBinary(path, MpvInstallURL)
}

// CheckYtDlp checks if yt-dlp, which mpv uses to resolve video page URLs, is installed
func CheckYtDlp() error {
	return CheckBinary("yt-dlp", YtDlpInstallURL)
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll(mpvPath string) []error {
	var errors []error

	if err := CheckMpv(mpvPath); err != nil {
		errors = append(errors, err)
	}

	if err := CheckYtDlp(); err != nil {
		errors = append(errors, err)
	}

	return errors
}
