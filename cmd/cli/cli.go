package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"ohnitiel/sodapop/internal/config"
	"ohnitiel/sodapop/internal/export"
	"ohnitiel/sodapop/internal/locale"
	"ohnitiel/sodapop/internal/soda"

	"github.com/urfave/cli-altsrc/v3"
	toml "github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

func validateOutputFormat(format string, l *locale.Locale) error {
	if !slices.Contains(export.Formats, strings.ToLower(format)) {
		return fmt.Errorf(l.Errors.OutputFormatNotImpl, format)
	}
	return nil
}

type queryOverrides struct {
	selectExpr  string
	whereClause string
	orderExpr   string
	limit       string
}

func buildRequest(dataset *config.Dataset, overrides queryOverrides) soda.Request {
	query := soda.QueryFromMap(dataset.QueryParams())

	if overrides.selectExpr != "" {
		query = query.Select(overrides.selectExpr)
	}
	if overrides.whereClause != "" {
		query = query.Where(overrides.whereClause)
	}
	if overrides.orderExpr != "" {
		query = query.Order(overrides.orderExpr)
	}
	if overrides.limit != "" {
		query = query.Filter("$limit", overrides.limit)
	}

	return soda.Request{Endpoint: dataset.Endpoint, Query: query}
}

func Sodapop(cfg *config.Config) {
	var configPath string
	var outputFormat string
	var noCache bool
	var datasets []string
	var overrides queryOverrides

	l, err := locale.Load(cfg.Locale)
	if err != nil {
		log.Fatal(err)
	}

	client := soda.NewClient(time.Duration(cfg.Timeout)*time.Second, cfg.UserAgent)

	var cache *soda.Cache
	if cfg.Cache.UseCache {
		cache = soda.NewCache(cfg.Cache.MaxAge)
	}
	executor := soda.NewExecutor(client, cache)

	selected := func() map[string]*config.Dataset {
		out := make(map[string]*config.Dataset)
		for name, dataset := range cfg.GetDatasets() {
			if len(datasets) > 0 && !slices.Contains(datasets, name) {
				continue
			}
			if dataset.Disabled {
				continue
			}
			out[name] = dataset
		}
		return out
	}

	cmd := &cli.Command{
		Name:        "sodapop",
		Description: l.CLI.Description,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "./config/config.toml",
				Usage:       l.CLI.Flags.Config,
				Destination: &configPath,
			},
			&cli.StringSliceFlag{
				Name:    "datasets",
				Aliases: []string{"d"},
				Usage:   l.CLI.Flags.Datasets,
				Sources: cli.NewValueSourceChain(
					toml.TOML("default_datasets", altsrc.NewStringPtrSourcer(&configPath))),
				Destination: &datasets,
			},
			&cli.StringFlag{
				Name:        "select",
				Usage:       l.CLI.Flags.Select,
				Destination: &overrides.selectExpr,
			},
			&cli.StringFlag{
				Name:        "where",
				Usage:       l.CLI.Flags.Where,
				Destination: &overrides.whereClause,
			},
			&cli.StringFlag{
				Name:        "order",
				Usage:       l.CLI.Flags.Order,
				Destination: &overrides.orderExpr,
			},
			&cli.StringFlag{
				Name:        "limit",
				Usage:       l.CLI.Flags.Limit,
				Destination: &overrides.limit,
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "export",
				ArgsUsage: l.CLI.Args.Export,
				Usage:     l.CLI.Commands.Export,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output-format",
						Usage: l.CLI.Flags.OutputFormat,
						Action: func(ctx context.Context, c *cli.Command, s string) error {
							return validateOutputFormat(s, l)
						},
						Destination: &outputFormat,
					},
					&cli.BoolFlag{
						Name:        "no-cache",
						Usage:       l.CLI.Flags.NoCache,
						Destination: &noCache,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					name := c.Args().Get(0)
					savePath := c.Args().Get(1)

					if outputFormat == "" {
						outputFormat = filepath.Ext(savePath)
						if outputFormat == "" || outputFormat == "." {
							return fmt.Errorf("%s", l.Errors.OutputFormatEmpty)
						}
						outputFormat = outputFormat[1:]
					} else {
						if err := validateOutputFormat(outputFormat, l); err != nil {
							return err
						}
					}

					dataset := cfg.GetDataset(name)
					if dataset == nil {
						return fmt.Errorf(l.Errors.UnknownDataset, name)
					}
					if dataset.Disabled {
						return fmt.Errorf(l.Errors.DatasetDisabled, name)
					}

					useCache := cfg.Cache.UseCache && !noCache
					res, err := executor.FetchOne(ctx, buildRequest(dataset, overrides), useCache)
					if err != nil {
						return fmt.Errorf(l.Errors.FetchFailed, name, err)
					}

					if err := export.Write(ctx, res, savePath, outputFormat, dataset.Columns); err != nil {
						return err
					}

					fmt.Printf(l.Logs.Exported+"\n", res.RowCount, savePath)
					return nil
				},
			},
			{
				Name:      "fetch",
				ArgsUsage: l.CLI.Args.Fetch,
				Usage:     l.CLI.Commands.Fetch,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "no-cache",
						Usage:       l.CLI.Flags.NoCache,
						Destination: &noCache,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() > 0 {
						datasets = c.Args().Slice()
					}

					targets := selected()
					if len(targets) == 0 {
						return fmt.Errorf("%s", l.Errors.NoDatasetSelected)
					}

					requests := make(map[string]soda.Request, len(targets))
					for name, dataset := range targets {
						requests[name] = buildRequest(dataset, overrides)
					}

					useCache := cfg.Cache.UseCache && !noCache
					results, failures := executor.FetchAll(ctx, cfg.MaxWorkers, requests, useCache)

					names := make([]string, 0, len(results))
					for name := range results {
						names = append(names, name)
					}
					slices.Sort(names)
					for _, name := range names {
						res := results[name]
						fmt.Printf(l.Logs.Fetched+"\n", name, res.RowCount, res.Duration)
					}

					if len(results) == 0 && len(failures) > 0 {
						return fmt.Errorf(l.Errors.FetchFailed, "all datasets", fmt.Errorf("%d failures", len(failures)))
					}
					return nil
				},
			},
			{
				Name:  "check",
				Usage: l.CLI.Commands.Check,
				Action: func(ctx context.Context, c *cli.Command) error {
					targets := selected()
					if len(targets) == 0 {
						return fmt.Errorf("%s", l.Errors.NoDatasetSelected)
					}

					names := make([]string, 0, len(targets))
					for name := range targets {
						names = append(names, name)
					}
					slices.Sort(names)

					for _, name := range names {
						endpoint := targets[name].Endpoint
						if !soda.LooksLikeResource(endpoint) {
							fmt.Printf(l.Logs.NotResource+"\n", name)
						}

						if err := client.Check(ctx, endpoint); err != nil {
							fmt.Printf(l.Logs.CheckFailed+"\n", name, err)
							continue
						}
						fmt.Printf(l.Logs.CheckOK+"\n", name)
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
