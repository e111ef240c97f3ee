package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/favigo/favigo/color"
	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/icon"
	"github.com/favigo/favigo/key"
	"github.com/favigo/favigo/log"
	"github.com/favigo/favigo/style"
	"github.com/favigo/favigo/util"
	"github.com/spf13/viper"
)

// Notify prints a notice to w when a newer release than the running one exists.
// Lookup failures are logged and otherwise silent.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	erase := util.PrintErasable(w, fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Debugf("version check: %v", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/"+constant.Repository+"/releases/tag/v"+latest),
	)
}
