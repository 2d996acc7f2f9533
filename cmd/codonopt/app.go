package main

import "github.com/urfave/cli/v2"

// application defines the codonopt app: top level flags and its two
// subcommands, optimize and pull, following the original multimizer-cli's
// Commands enum.
func application() *cli.App {
	return &cli.App{
		Name:  "codonopt",
		Usage: "Multi-host codon optimization from the command line.",

		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print the optimizer's iteration count and final error to stderr.",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the codon usage database. Falls back to $CODON_DB_PATH, then ./codon.db.",
			},
		},

		Commands: []*cli.Command{
			{
				Name:      "optimize",
				Aliases:   []string{"op"},
				Usage:     "Optimize a query sequence against one or more host organisms.",
				ArgsUsage: "QUERY",

				Flags: []cli.Flag{
					&cli.Int64SliceFlag{
						Name:     "host",
						Aliases:  []string{"org"},
						Usage:    "Organism ID to optimize against. Repeat to target multiple hosts.",
						Required: true,
					},
					&cli.Float64SliceFlag{
						Name:  "weight",
						Usage: "Relative expression weight for the corresponding --host, in the same order. Defaults to equal weighting.",
					},
					&cli.IntFlag{
						Name:  "max-iterations",
						Value: 1000,
						Usage: "Maximum optimizer iterations.",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: 42,
						Usage: "PRNG seed. The same seed and inputs always reproduce the same sequence.",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Value: 0.1,
						Usage: "Prohibited codon preference threshold, in (0, 1).",
					},
					&cli.Float64Flag{
						Name:  "min-error",
						Value: 0.01,
						Usage: "Stop once the predicted-vs-target expression error falls to or below this value.",
					},
				},
				Action: optimizeCommand,
			},
			{
				Name:      "pull",
				Aliases:   []string{"p"},
				Usage:     "Pull codon usage data for an organism from the database.",
				ArgsUsage: "ORGANISM_ID",
				Action:    pullCommand,
			},
		},
	}
}
