// Copyright 2026 Edquery Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/edquery/matnews"
	"github.com/edquery/matnews/config"
)

func main() {
	app := &cli.App{
		Name:  "matnews",
		Usage: "Ingest multi-academy trust newsletters and answer questions about them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file (defaults to $MATNEWS_CONFIG)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Fetch and store newsletters for a trust",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "mat",
						Aliases:  []string{"m"},
						Usage:    "Trust ID to ingest for",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "url",
						Aliases: []string{"u"},
						Usage:   "Newsletter URL to ingest (repeatable)",
					},
					&cli.StringFlag{
						Name:  "url-template",
						Usage: "URL template with {id} placeholder, expanded over --start..--end",
					},
					&cli.IntFlag{
						Name:  "start",
						Usage: "First issue number for --url-template",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "end",
						Usage: "Last issue number for --url-template",
						Value: 1,
					},
					&cli.BoolFlag{
						Name:  "seeds",
						Usage: "Ingest the trust's configured seed URLs",
					},
				},
			},
			{
				Name:   "ask",
				Usage:  "Answer a question from a trust's stored newsletters",
				Action: askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "mat",
						Aliases:  []string{"m"},
						Usage:    "Trust ID to ask about",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "question",
						Aliases: []string{"q"},
						Usage:   "Question to answer (or pass it as arguments)",
					},
				},
			},
			{
				Name:   "mats",
				Usage:  "List configured trusts",
				Action: matsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadService(c *cli.Context) (*matnews.Service, error) {
	var cfg config.Config
	if path := c.String("config"); path != "" {
		cfg = config.LoadFrom(path)
	} else {
		cfg = config.Load()
	}
	return matnews.New(cfg)
}

func ingestCommand(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	matID := c.String("mat")

	switch {
	case c.String("url-template") != "":
		result, err := svc.IngestTemplate(c.Context, matID, c.String("url-template"), c.Int("start"), c.Int("end"))
		if err != nil {
			return err
		}
		printSummary(result.Fetched, result.Deduplicated, result.Failed)
	case c.Bool("seeds"):
		result, err := svc.IngestSeeds(c.Context, matID)
		if err != nil {
			return err
		}
		printSummary(result.Fetched, result.Deduplicated, result.Failed)
	case len(c.StringSlice("url")) > 0:
		result, err := svc.Ingest(c.Context, matID, c.StringSlice("url"))
		if err != nil {
			return err
		}
		printSummary(result.Fetched, result.Deduplicated, result.Failed)
	default:
		return fmt.Errorf("nothing to ingest: pass --url, --url-template or --seeds")
	}

	return nil
}

func printSummary(fetched, deduplicated, failed int) {
	fmt.Printf("fetched: %d  deduplicated: %d  failed: %d\n", fetched, deduplicated, failed)
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(c.String("question"))
	if question == "" {
		question = strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	}
	if question == "" {
		return fmt.Errorf("usage: matnews ask --mat ID --question TEXT")
	}

	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	answer, err := svc.Answer(c.Context, c.String("mat"), question)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	if len(answer.CitedURLs) > 0 {
		fmt.Println("\nSources:")
		for _, url := range answer.CitedURLs {
			fmt.Println("  " + url)
		}
	}
	return nil
}

func matsCommand(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	for _, mat := range svc.ListMATs() {
		fmt.Printf("%s\t%s\n", mat.ID, mat.Name)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
