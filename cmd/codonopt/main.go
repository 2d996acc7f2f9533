// Command codonopt is a command line utility for multi-host codon
// optimization. It is structured the way poly's own command line utility
// is: main is a thin wrapper around run, which builds and runs a
// *cli.App, so the app itself stays testable without a subprocess.
package main

import (
	"log"
	"os"
)

func main() {
	run(os.Args)
}

// run is separated from main for testing's sake, mirroring poly's own
// poly/main.go.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}
