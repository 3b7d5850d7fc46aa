// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func csvFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "csv",
		Usage: "Path to the songbook CSV file (overrides config)",
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
	}
}

// setupCommand writes a starter configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand runs the songbook HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the songbook HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides config)",
			},
			csvFlag(),
		},
		Action: r.Serve,
	}
}

// songsCommand lists the songbook in set order.
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "songs",
		Usage:  "List songs in set order",
		Flags:  append([]cli.Flag{csvFlag()}, outputFlags()...),
		Action: r.Songs,
	}
}

// songCommand shows one song with its instrument assignments.
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Show one song with its instrument assignments",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags:  append([]cli.Flag{csvFlag()}, outputFlags()...),
		Action: r.Song,
	}
}

// musicianCommand lists every song a musician plays on.
func musicianCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "musician",
		Usage: "List every song a musician plays on",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name"},
		},
		Flags:  append([]cli.Flag{csvFlag()}, outputFlags()...),
		Action: r.Musician,
	}
}

// checkCommand validates the CSV source and reports inconsistencies.
func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Validate the CSV source and report inconsistencies",
		Flags:  append([]cli.Flag{csvFlag()}, outputFlags()...),
		Action: r.Check,
	}
}

// tuiCommand launches the interactive songbook browser.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the songbook interactively",
		Flags:  []cli.Flag{csvFlag()},
		Action: r.TUI,
	}
}
