// Command calrepo inspects a calendar repository.
//
// Usage:
//
//	calrepo [--config FILE] [--data DIR] <command> [arguments]
//
// Commands:
//
//	list        List calendars and their data sources
//	show        Print a calendar's raw definition
//	check       Build calendars and report errors
//	day         Show the celebrations of a date
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).root().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}
