// Command probe runs manual checks against the deployed flight risk
// function and the OpenWeatherMap API, printing a summary and saving the raw
// responses as JSON reports.
//
// Usage:
//
//	probe [flags] analyze|lookup|route|weather|all
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightriskradar/internal/config"
	"flightriskradar/internal/logging"
	"flightriskradar/internal/models"
	"flightriskradar/internal/probe"

	"github.com/joho/godotenv"
)

type options struct {
	functionURL  string
	flightNumber string
	airlineCode  string
	airlineName  string
	origin       string
	destination  string
	date         string
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	envFile := flag.String("env-file", ".env", "Optional dotenv file with FLIGHTRISK_* variables")

	var opts options
	flag.StringVar(&opts.functionURL, "url", "", "Flight risk function URL (overrides probe.function_url)")
	flag.StringVar(&opts.flightNumber, "flight", "WN1125", "Flight number for analyze/lookup")
	flag.StringVar(&opts.airlineCode, "airline-code", "WN", "Airline code for analyze/lookup")
	flag.StringVar(&opts.airlineName, "airline-name", "Southwest Airlines", "Airline name for analyze/lookup")
	flag.StringVar(&opts.origin, "origin", "SJC", "Origin airport for route search")
	flag.StringVar(&opts.destination, "destination", "LAX", "Destination airport for route search")
	flag.StringVar(&opts.date, "date", "", "Flight date YYYY-MM-DD (default tomorrow)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] analyze|lookup|route|weather|all\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	if *configPath != "" {
		os.Setenv("FLIGHTRISK_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logCloser := logging.Init(cfg.Log)
	defer logCloser.Close()

	if opts.functionURL == "" {
		opts.functionURL = cfg.Probe.FunctionURL
	}
	if opts.date == "" {
		opts.date = probe.Tomorrow(time.Now())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, flag.Arg(0), cfg.Probe, opts); err != nil {
		slog.Error("Probe failed", "command", flag.Arg(0), "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, cfg config.ProbeConfig, opts options) error {
	switch command {
	case "analyze":
		return runFlightRisk(ctx, cfg, opts, probe.AnalyzeFlightRisk(opts.flightNumber, opts.airlineCode, opts.airlineName, opts.date))
	case "lookup":
		return runFlightRisk(ctx, cfg, opts, probe.LookupSpecificFlight(opts.flightNumber, opts.airlineCode, opts.airlineName, opts.date))
	case "route":
		return runFlightRisk(ctx, cfg, opts, probe.SearchFlights(opts.origin, opts.destination, opts.date))
	case "weather":
		return runWeather(ctx, cfg)
	case "all":
		var errs []error
		for _, sub := range []string{"analyze", "lookup", "route", "weather"} {
			fmt.Printf("\n=== %s ===\n", sub)
			if err := run(ctx, sub, cfg, opts); err != nil {
				fmt.Printf("%s failed: %v\n", sub, err)
				errs = append(errs, fmt.Errorf("%s: %w", sub, err))
			}
		}
		return errors.Join(errs...)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runFlightRisk(ctx context.Context, cfg config.ProbeConfig, opts options, req models.FlightRiskRequest) error {
	if opts.functionURL == "" {
		return fmt.Errorf("flight risk function URL is required (-url or probe.function_url)")
	}

	client := probe.NewFlightRiskClient(opts.functionURL, cfg.Timeout)
	fmt.Printf("Calling %s (%s, timeout %s)\n", opts.functionURL, req.Action, client.Timeout(req.Action))

	report, err := probe.RunFlightRisk(ctx, client, req, time.Now)
	if err != nil {
		return err
	}

	probe.WriteFlightRiskSummary(os.Stdout, report)

	path, err := probe.SaveReport(cfg.OutputDir, probe.ReportFile(req.Action), report)
	if err != nil {
		return err
	}
	fmt.Printf("Full response saved to: %s\n", path)
	return nil
}

func runWeather(ctx context.Context, cfg config.ProbeConfig) error {
	if cfg.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OpenWeatherMap API key is required (FLIGHTRISK_PROBE_OPENWEATHER_API_KEY)")
	}

	client := probe.NewWeatherClient(cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey)
	results := probe.RunWeatherSurvey(ctx, client, probe.DefaultLocations, time.Now)

	probe.WriteWeatherSummary(os.Stdout, probe.DefaultLocations, results)

	path, err := probe.SaveReport(cfg.OutputDir, probe.WeatherReportFile, results)
	if err != nil {
		return err
	}
	fmt.Printf("Raw responses saved to: %s\n", path)
	return nil
}
