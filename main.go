package main

import (
	"flag"
	"fmt"
	"os"

	"yashubustudio/cropyield/internal/app"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (default: ./config.yaml)")
	flag.Parse()
	if err := app.Run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "cropyield: %v\n", err)
		os.Exit(1)
	}
}
