package main

import (
	"fmt"
	"os"

	"github.com/evdal/timeliste/internal/cli"
	"github.com/evdal/timeliste/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath := os.Getenv("TIMELISTE_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	root := cli.NewRootCmd(&cli.App{Store: s})
	return root.Execute()
}
