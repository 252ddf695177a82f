package main

import (
	"context"
	"fmt"
	"os"

	"github.com/launchbynttdata/launch-tool-versioninfo/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "tvi: %v\n", err)
		os.Exit(1)
	}
}
