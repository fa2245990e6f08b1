package main

import (
	"fmt"
	"os"

	"video2broll/cmd/v2b/cmd"
	"video2broll/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
