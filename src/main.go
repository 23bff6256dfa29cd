// The Main function of coverd. It should set everything up, open the lookup
// cache, create a cover resolver and a webserver and run them until stopped.
//
// At the moment it is in package src because I import it from the project's root
// folder.
package src

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/journeo/coverd/src/cache"
	"github.com/journeo/coverd/src/config"
	"github.com/journeo/coverd/src/cover"
	"github.com/journeo/coverd/src/logging"
	"github.com/journeo/coverd/src/scaler"
	"github.com/journeo/coverd/src/version"
	"github.com/journeo/coverd/src/webserver"
)

// flags holds the command line arguments.
type flags struct {
	configPath  string
	listen      string
	showVersion bool
	resolve     string
	season      string
}

func parseFlags(args []string) (flags, error) {
	var f flags

	fset := flag.NewFlagSet("coverd", flag.ContinueOnError)
	fset.StringVar(&f.configPath, "config", "", "Path to the configuration file. "+
		"Defaults to config.json in the user path.")
	fset.StringVar(&f.listen, "listen", "", "Address to listen on. Overrides the "+
		"one from the configuration file.")
	fset.BoolVar(&f.showVersion, "v", false, "Show version and build information.")
	fset.StringVar(&f.resolve, "resolve", "", "Resolve a cover for this guide "+
		"title, print its URL and exit.")
	fset.StringVar(&f.season, "season", "", "Season used together with -resolve. "+
		"One of ETE, PRINTEMPS, AUTOMNE or HIVER.")

	if err := fset.Parse(args); err != nil {
		return f, err
	}

	if f.season != "" && !cover.Season(f.season).Known() {
		return f, fmt.Errorf("unknown season `%s`", f.season)
	}

	return f, nil
}

// Main is the only thing run in the project's root main.go file.
// For all intent and purposes this is the main function.
func Main(sqlFiles fs.FS) {
	args, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(2)
	}

	if args.showVersion {
		version.Print(os.Stdout)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args, sqlFiles); err != nil {
		logging.Error().Err(err).Msg("coverd stopped with an error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args flags, sqlFiles fs.FS) error {
	var cfg config.Config
	if err := cfg.FindAndParse(afero.NewOsFs(), args.configPath); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if args.listen != "" {
		cfg.Listen = args.listen
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}

	resolver, closeCache, err := newResolver(ctx, cfg, sqlFiles)
	if err != nil {
		return err
	}
	defer closeCache()

	if args.resolve != "" {
		res := resolver.ResolveResult(ctx, args.resolve, cover.Season(args.season))
		fmt.Println(res.URL)
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)

	imgScaler := scaler.New(ctx)
	g.Go(imgScaler.Wait)

	srv := webserver.NewServer(cfg, resolver, imgScaler, logging.WithComponent("webserver"))
	g.Go(func() error {
		defer imgScaler.Cancel()
		return srv.Serve(ctx)
	})

	logging.Info().
		Str("version", version.Version).
		Str("listen", cfg.Listen).
		Strs("lookup_languages", cfg.LookupLanguages).
		Msg("coverd starting")

	return g.Wait()
}

// newResolver returns the cover resolver backed by Wikipedia and the lookup
// cache. The returned function closes the cache.
func newResolver(
	ctx context.Context,
	cfg config.Config,
	sqlFiles fs.FS,
) (*cover.Resolver, func(), error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("finding database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, nil, fmt.Errorf("creating database directory: %w", err)
	}

	lookupCache, err := cache.Open(
		ctx,
		dbPath,
		sqlFiles,
		cfg.CacheTTL.Std(),
		logging.WithComponent("cache"),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("opening lookup cache: %w", err)
	}

	if purged, err := lookupCache.Purge(ctx); err != nil {
		logging.Warn().Err(err).Msg("purging expired lookups")
	} else if purged > 0 {
		logging.Info().Int64("count", purged).Msg("purged expired lookups")
	}

	client := cover.NewSummaryClient(cfg.UserAgent, cfg.LookupRate, cfg.LookupBurst)
	client.SetLogger(logging.WithComponent("wikipedia"))

	lookups := cover.WithCache(
		cover.WikipediaLookups(client, cfg.LookupLanguages...),
		lookupCache,
		logging.WithComponent("cache"),
	)

	resolver := cover.NewResolver(
		lookups,
		cover.WithLogger(logging.WithComponent("cover")),
		cover.WithAttemptTimeout(cfg.LookupTimeout.Std()),
	)

	closeCache := func() {
		if err := lookupCache.Close(); err != nil {
			logging.Warn().Err(err).Msg("closing lookup cache")
		}
	}

	return resolver, closeCache, nil
}
