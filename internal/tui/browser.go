package tui

import (
	"os/exec"
	"runtime"
)

// OSOpenCmd builds the command that hands a URL to the desktop. Tests replace it.
var OSOpenCmd = func(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// OpenBrowser opens url in the default browser.
func OpenBrowser(url string) error {
	return OSOpenCmd(url).Start()
}
