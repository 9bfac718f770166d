package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/phillip-england/timetag/internal/timetagcli"
)

func main() {
	if err := timetagcli.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, timetagcli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr)
			timetagcli.PrintUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
