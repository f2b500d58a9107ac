package main

import (
	"os"

	"cosmossdk.io/log"

	"finlear/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		log.NewLogger(os.Stderr).Error("finlear failed", "error", err)
		os.Exit(1)
	}
}
