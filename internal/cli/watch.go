package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"flight-tracker/flightboard/internal/board"

	"github.com/spf13/cobra"
)

const clearScreen = "\033[H\033[2J"

func WatchCmd() *cobra.Command {
	var interval time.Duration
	var noClear bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the live flight board, refreshing periodically",
		Long: `Show the live flight board, refreshing periodically.

Type r and Enter to refresh immediately, q and Enter to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			var mu sync.Mutex

			b := board.New(apiClient(cmd), board.WithPollInterval(interval))
			b.OnChange(func(s board.State) {
				if s.Loading && s.Loaded {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				if !noClear {
					fmt.Fprint(out, clearScreen)
				}
				renderBoard(out, s, time.Now())
			})

			go readKeys(ctx, cmd.InOrStdin(), b, stop)

			if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", board.DefaultPollInterval, "poll interval")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "append frames instead of redrawing the screen")
	return cmd
}

// readKeys takes one command per line: r refreshes now, q quits.
func readKeys(ctx context.Context, in io.Reader, b *board.Board, stop context.CancelFunc) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "r":
			// a failure shows up as the error view
			_ = b.Refresh(ctx)
		case "q":
			stop()
			return
		}
	}
}
