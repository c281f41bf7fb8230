package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ValidateExiftoolDependency checks if exiftool is available in PATH
func ValidateExiftoolDependency() error {
	if _, err := exec.LookPath("exiftool"); err != nil {
		return fmt.Errorf("exiftool not found in PATH. %s", getInstallationInstructions())
	}

	return nil
}

// ValidateLockToolDependency checks that the platform's open-file query tool
// is available. Only darwin and linux use an external tool; other platforms
// have nothing to validate.
func ValidateLockToolDependency() error {
	switch runtime.GOOS {
	case "darwin", "linux":
		if _, err := exec.LookPath("lsof"); err != nil {
			return fmt.Errorf("lsof not found in PATH. Install it with your system package manager")
		}
	}

	return nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install exiftool"
	case "linux":
		return "Install with: apt-get install libimage-exiftool-perl (Ubuntu/Debian) or yum install perl-Image-ExifTool (CentOS/RHEL)"
	case "windows":
		return "Download from https://exiftool.org and add to PATH"
	default:
		return "Download from https://exiftool.org"
	}
}
