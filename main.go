package main

import (
	"os"

	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"github.com/IngInx747/nbvh/cmd"
)

var logFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{module}/%{level:.4s}%{color:reset} %{message}`,
)

// Map the global verbosity flags onto the logging backend before any
// command runs. The bvh module pins itself to notice; -vv lifts that
// too since module levels reset with the backend.
func setupLogging(ctx *cli.Context) error {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, logFormat))

	switch {
	case ctx.GlobalBool("vv"):
		leveled.SetLevel(logging.DEBUG, "")
	case ctx.GlobalBool("v"):
		leveled.SetLevel(logging.INFO, "")
	default:
		leveled.SetLevel(logging.NOTICE, "")
	}

	logging.SetBackend(leveled)
	return nil
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "nbvh"
	app.Usage = "build and inspect bounding volume hierarchies"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:  "bench",
			Usage: "benchmark tree construction and ray queries",
			Description: `
Generate a synthetic triangle scene, build a tree with each split
strategy and fire a batch of rays at it, then report build time,
tree shape and query throughput per strategy.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "triangles",
					Value: 10000,
					Usage: "number of triangles in the generated scene",
				},
				cli.IntFlag{
					Name:  "rays",
					Value: 10000,
					Usage: "number of rays to fire at the scene",
				},
				cli.IntFlag{
					Name:  "threshold",
					Value: 1,
					Usage: "attempted max number of primitives per leaf",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "scene generator seed",
				},
			},
			Action: cmd.Bench,
		},
		{
			Name:  "dump",
			Usage: "print the node table of a tree built over a generated scene",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "triangles",
					Value: 8,
					Usage: "number of triangles in the generated scene",
				},
				cli.IntFlag{
					Name:  "threshold",
					Value: 1,
					Usage: "attempted max number of primitives per leaf",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "scene generator seed",
				},
				cli.StringFlag{
					Name:  "split",
					Value: "sah",
					Usage: "split strategy: sah, middle or equal",
				},
			},
			Action: cmd.Dump,
		},
	}

	app.Run(os.Args)
}
