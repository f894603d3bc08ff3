package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clocklog/internal/logging"
	"github.com/Tiliavir/clocklog/internal/storage"
	"github.com/Tiliavir/clocklog/internal/timecalc"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running clock-in and today's total",
	Args:  userArgs(cobra.NoArgs),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Keep running and refresh when the clock files change")
}

func runStatus(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if !statusWatch {
		return current.status(w, timecalc.MomentAt(current.now()))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var mu sync.Mutex
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "\n%s\n", current.now().Format("15:04"))
		if err := current.status(w, timecalc.MomentAt(current.now())); err != nil {
			fmt.Fprintln(w, err)
		}
	}
	render()

	go refreshEveryMinute(ctx.Done(), render)
	return storage.Watch(ctx, current.paths(), func(path string) {
		current.log.Debug("clock file changed", logging.F("path", path))
		render()
	}, current.log)
}

func refreshEveryMinute(done <-chan struct{}, render func()) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			render()
		}
	}
}
