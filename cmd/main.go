package main

import (
	"os"

	"github.com/maxhum-sudo/LifeCost/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
