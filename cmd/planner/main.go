package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"carbon-planner/config"
	"carbon-planner/core/estimator"
	"carbon-planner/core/models"
	"carbon-planner/core/optimizer"
	"carbon-planner/core/planning"
	"carbon-planner/core/repository"
	"carbon-planner/core/spec"

	"github.com/urfave/cli/v3"
)

func main() {
	app := newApp(os.Stdout)
	os.Exit(handleExit(os.Stderr, app.Run(os.Args)))
}

// newApp builds the planner command line. Reports go to out.
func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "planner"
	app.Usage = "Worst-case estimates and placement plans for compute projects"

	outputFlag := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Report format: text or json",
		Value:   outputText,
	}
	modeFlag := &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "Compare mode: AUTO, GREENEST, CHEAPEST or FASTEST",
		Value:   string(models.CompareAuto),
	}
	jobFlag := &cli.StringFlag{
		Name:    "job",
		Aliases: []string{"j"},
		Usage:   "Restrict the plan to one job id",
	}

	app.Commands = []*cli.Command{
		{
			Name:      "estimate",
			Usage:     "Compute worst-case bounds for every job of a project file",
			ArgsUsage: "PROJECT_FILE",
			Flags:     []cli.Flag{outputFlag},
			Action: func(ctx *cli.Context) error {
				project, svc, err := load(ctx)
				if err != nil {
					return err
				}
				result := svc.Estimate(project)
				if err := render(out, ctx.String("output"), result, func() { writeEstimate(out, project, result) }); err != nil {
					return err
				}
				if len(result.Failures) > 0 {
					return withCode(ExitInfeasible, "%d job(s) could not be estimated", len(result.Failures))
				}
				return nil
			},
		},
		{
			Name:      "plan",
			Usage:     "Select a region, provider and window for every job of a project file",
			ArgsUsage: "PROJECT_FILE",
			Flags:     []cli.Flag{outputFlag, modeFlag, jobFlag},
			Action: func(ctx *cli.Context) error {
				project, svc, err := load(ctx)
				if err != nil {
					return err
				}
				mode, err := planning.ParseCompareMode(ctx.String("mode"))
				if err != nil {
					return err
				}
				plan, err := svc.Plan(project, mode, ctx.String("job"))
				if err != nil {
					return err
				}
				if err := render(out, ctx.String("output"), plan, func() { writePlan(out, plan) }); err != nil {
					return err
				}
				if len(plan.Infeasible) > 0 {
					return withCode(ExitInfeasible, "%d job(s) have no feasible placement", len(plan.Infeasible))
				}
				return nil
			},
		},
		{
			Name:      "simulate",
			Usage:     "Plan a project file and simulate its actuals",
			ArgsUsage: "PROJECT_FILE",
			Flags:     []cli.Flag{outputFlag, modeFlag, jobFlag},
			Action: func(ctx *cli.Context) error {
				project, svc, err := load(ctx)
				if err != nil {
					return err
				}
				mode, err := planning.ParseCompareMode(ctx.String("mode"))
				if err != nil {
					return err
				}
				run, err := svc.Simulate(project, mode, ctx.String("job"))
				if err != nil {
					return err
				}
				if err := render(out, ctx.String("output"), run, func() { writeRun(out, run) }); err != nil {
					return err
				}
				if len(run.Skipped) > 0 {
					return withCode(ExitInfeasible, "%d job(s) skipped", len(run.Skipped))
				}
				return nil
			},
		},
		{
			Name:      "seed",
			Usage:     "Write the sample project document",
			ArgsUsage: "[OUTPUT_FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "Document format: yaml, toml or json (default from the file extension)",
				},
			},
			Action: func(ctx *cli.Context) error {
				path := ctx.Args().Get(0)
				format := spec.Format(strings.ToLower(ctx.String("format")))
				if format == "" {
					format = spec.FormatYAML
					if path != "" {
						format = spec.FormatFromPath(path)
					}
				}

				data, err := spec.Encode(spec.FromProject(spec.SeedProject(time.Now())), format)
				if err != nil {
					return withCode(ExitInput, "%v", err)
				}
				if path == "" {
					_, err = out.Write(data)
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return withCode(ExitStorage, "failed to write %s: %v", path, err)
				}
				return nil
			},
		},
	}
	return app
}

// load reads the project file argument and builds a planning service from the environment
func load(ctx *cli.Context) (*models.Project, *planning.Service, error) {
	if ctx.Args().Len() != 1 {
		return nil, nil, fmt.Errorf("expected exactly one PROJECT_FILE argument, got %d", ctx.Args().Len())
	}
	path := ctx.Args().Get(0)
	if _, err := os.Stat(path); err != nil {
		return nil, nil, withCode(ExitStorage, "failed to open project file: %v", err)
	}
	project, err := spec.LoadProject(path)
	if err != nil {
		return nil, nil, err
	}

	svc, err := newService()
	if err != nil {
		return nil, nil, err
	}
	return project, svc, nil
}

func newService() (*planning.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	defaults, err := cfg.Defaults()
	if err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	est := estimator.NewEstimator(cat, cfg.Buffers)
	return planning.NewService(est, optimizer.NewPlanSelector(est, cat.Windows), repository.NewMemoryStore(), nil,
		planning.Defaults{
			ReportingRegime: defaults.ReportingRegime,
			Profile:         defaults.Profile,
			Compliance:      defaults.Compliance,
		}), nil
}

func render(out io.Writer, format string, v interface{}, text func()) error {
	switch strings.ToLower(format) {
	case outputJSON:
		return writeJSON(out, v)
	case outputText, "":
		text()
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
