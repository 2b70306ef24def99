package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/invest/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := newApp(cfg).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(cfg config.Config) *cli.App {
	serve := &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server",
		Action: func(c *cli.Context) error {
			return runServe(c.Context, cfg)
		},
	}

	return &cli.App{
		Name:   "invest",
		Usage:  "investment platform dashboard and API",
		Action: serve.Action,
		Commands: []*cli.Command{
			serve,
			{
				Name:  "render",
				Usage: "print the dashboard HTML to stdout",
				Action: func(c *cli.Context) error {
					return runRender(c.Context, cfg, c.App.Writer)
				},
			},
			{
				Name:  "export",
				Usage: "write portfolios and assets to an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Value:   "portfolios.xlsx",
						Usage:   "output file",
					},
				},
				Action: func(c *cli.Context) error {
					return runExport(c.Context, cfg, c.String("out"))
				},
			},
		},
	}
}
