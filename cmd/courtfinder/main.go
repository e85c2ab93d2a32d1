// Package main is the courtfinder CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/courtfinder/internal/catalogue"
	"github.com/hyperjump/courtfinder/internal/cli"
	"github.com/hyperjump/courtfinder/internal/config"
	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/hyperjump/courtfinder/internal/search"
	"github.com/hyperjump/courtfinder/internal/server"
	"github.com/hyperjump/courtfinder/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

const (
	defaultConfigPath = "/usr/local/etc/courtfinder/config.yaml"
	shutdownTimeout   = 10 * time.Second
	httpTimeout       = 10 * time.Second
)

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// A missing default file means built-in defaults. Returns the config and the path
// that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		if path == defaultConfigPath && errors.Is(err, fs.ErrNotExist) {
			return config.Default(), "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}
	command, args := os.Args[1], os.Args[2:]
	var err error
	switch command {
	case "server":
		runServer(args)
	case "search":
		err = runSearch(args, os.Stdout)
	case "court":
		err = runCourt(args, os.Stdout)
	case "validate":
		err = runValidate(args, os.Stdout)
	case "init-config":
		err = runInitConfig(args, os.Stdout)
	case "version", "--version", "-v":
		fmt.Printf("courtfinder version %s\n", version)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage(os.Stdout)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
		os.Exit(1)
	}
}

func runServer(args []string) {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	store, engine, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	logger.Info("catalogue loaded",
		zap.Int("courts", store.Current().Len()),
		zap.String("path", cfg.Catalogue.Path),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Catalogue.Watch {
		w, err := store.Watch(ctx)
		if err != nil {
			logger.Fatal("Failed to watch catalogue", zap.Error(err))
		}
		defer w.Stop()
	}

	srv, err := server.NewServer(engine, store, &cfg.Server, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*catalogue.Store, *search.Engine, error) {
	store, err := catalogue.Open(cfg.Catalogue, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalogue: %w", err)
	}
	engine, err := search.NewEngine(store, &cfg.Search, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, engine, nil
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: courtfinder search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  courtfinder search manchester
  courtfinder search "crown court"
  courtfinder search --format json midlands
  courtfinder search --server http://localhost:8080 london
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func runSearch(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL; empty searches the configured catalogue directly")
	outputFormat := fs.String("format", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	if err := fs.Parse(argsReorder(args)); err != nil {
		return err
	}

	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		return errors.New("a search term is required")
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}

	if *serverURL != "" {
		// The running service sees reloads this process would not.
		response, err := searchViaHTTP(*serverURL, queryStr)
		if err != nil {
			return err
		}
		return cli.WriteSearchResults(stdout, response, format)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	_, engine, err := initializeComponents(cfg, logger)
	if err != nil {
		return err
	}
	response := engine.Search(models.NewSearchQuery(queryStr))
	return cli.WriteSearchResults(stdout, response, format)
}

func searchViaHTTP(serverURL, query string) (*models.SearchResponse, error) {
	endpoint := strings.TrimSuffix(serverURL, "/") + "/api/v1/courts?" + url.Values{"q": {query}}.Encode()
	client := &http.Client{Timeout: httpTimeout}
	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runCourt(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("court", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("format", "text", "output format: text or json")
	if err := fs.Parse(argsReorder(args)); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: courtfinder court [flags] <slug>")
	}
	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := catalogue.Open(cfg.Catalogue, logger)
	if err != nil {
		return err
	}
	detail, err := store.Court(fs.Arg(0))
	if err != nil {
		return err
	}
	return cli.WriteCourt(stdout, detail, format)
}

func runValidate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, resolved, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if resolved == "" {
		resolved = "built-in defaults"
	}
	fmt.Fprintf(stdout, "config:    %s\n", resolved)

	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := catalogue.Open(cfg.Catalogue, logger)
	if err != nil {
		return err
	}
	source := cfg.Catalogue.Path
	if source == "" {
		source = "built-in sample"
	}
	fmt.Fprintf(stdout, "catalogue: %s\n", source)

	cat := store.Current()
	var summaryOnly []string
	for _, c := range cat.Courts() {
		detail, err := cat.Court(c.Slug)
		if err != nil {
			return err
		}
		if len(detail.Address.Lines()) == 0 {
			summaryOnly = append(summaryOnly, c.Slug)
		}
	}
	fmt.Fprintf(stdout, "courts:    %d\n", cat.Len())
	for _, slug := range summaryOnly {
		fmt.Fprintf(stdout, "warning:   %s has no address\n", slug)
	}
	fmt.Fprintln(stdout, "OK")
	return nil
}

func runInitConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	output := fs.String("output", "config.yaml", "where to write the config file")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := os.Stat(*output); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", *output)
	}
	if err := config.Save(*output, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", *output)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `courtfinder - Find a court or tribunal

Usage:
  courtfinder server [flags]             Start the web service
  courtfinder search [flags] <query>     Search the court catalogue
  courtfinder court [flags] <slug>       Show one court's details
  courtfinder validate [flags]           Check the config and catalogue load cleanly
  courtfinder init-config [flags]        Write a config file with every default
  courtfinder version                    Show version
  courtfinder help                       Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/courtfinder/config.yaml)
  --debug            Enable debug logging

Search Flags:
  --config string    Config file path
  --server string    Query a running server instead of loading the catalogue
  --format string    Output format: text or json (default: text)

Court Flags:
  --config string    Config file path
  --format string    Output format: text or json (default: text)

Init-config Flags:
  --output string    File to write (default: config.yaml)
  --force            Overwrite an existing file

Examples:
  courtfinder server
  courtfinder search manchester
  courtfinder search --format json "crown court"
  courtfinder court manchester-crown-court
  courtfinder validate --config ./config.yaml`)
}
