// Command calcbdd runs calculator feature files and prints the outcome.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errScenariosFailed) {
		fmt.Fprintln(os.Stderr, "calcbdd:", err)
	}
	stop()
	os.Exit(1)
}
