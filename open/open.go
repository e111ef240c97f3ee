// Package open shows a saved icon with the system's default handler or a chosen application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/favigo/favigo/constant"
)

// Start opens path asynchronously. An empty app uses the system default handler.
func Start(path, app string) error {
	cmd, err := command(runtime.GOOS, path, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, path, app string) (*exec.Cmd, error) {
	if app != "" {
		return commandWith(goos, path, app)
	}

	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", path), nil
	case constant.Darwin:
		return exec.Command("open", path), nil
	case constant.Linux:
		return exec.Command("xdg-open", path), nil
	case constant.Android:
		return exec.Command("termux-open", path), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

func commandWith(goos, path, app string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		// start treats & as a command separator
		escaped := strings.ReplaceAll(path, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), nil
	case constant.Darwin:
		return exec.Command("open", "-a", app, path), nil
	case constant.Linux:
		return exec.Command(app, path), nil
	case constant.Android:
		return exec.Command("termux-open", "--choose", path), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
