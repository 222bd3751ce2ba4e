package main

import (
	"context"
	"fmt"
	"os"

	"flight-tracker/flightboard/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
