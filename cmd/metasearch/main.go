package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/hyperifyio/metasearch/internal/app"
	"github.com/hyperifyio/metasearch/internal/search"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		query         string
		engines       string
		useEngines    string
		queryTypes    string
		timeRange     string
		page          int
		safeSearch    int
		lang          string
		searxURL      string
		searxKey      string
		braveKey      string
		searchFile    string
		userAgent     string
		engineTimeout time.Duration
		cacheTTL      time.Duration
		cacheSize     int
		redisAddr     string
		redisPassword string
		redisDB       int
		configPath    string
		envFile       string
		asJSON        bool
		verbose       bool
	)

	flag.StringVar(&query, "q", "", "Search query text")
	flag.StringVar(&engines, "engines", "duckduckgo,searx", "Comma-separated engines to configure")
	flag.StringVar(&useEngines, "use", "", "Restrict this query to a subset of configured engines (comma-separated); empty uses all")
	flag.StringVar(&queryTypes, "type", "text", "Result categories: text,video,image,file,autocompletion")
	flag.StringVar(&timeRange, "time", "anytime", "Recency window: anytime, day, week, month, year")
	flag.IntVar(&page, "page", 0, "Zero-based result page")
	flag.IntVar(&safeSearch, "safesearch", 1, "Safe search level (0 off, 1 moderate, 2 strict)")
	flag.StringVar(&lang, "lang", "", "Optional language hint, e.g. 'en' or 'fi'")
	flag.StringVar(&searxURL, "searx.url", os.Getenv("SEARX_URL"), "SearxNG base URL")
	flag.StringVar(&searxKey, "searx.key", os.Getenv("SEARX_KEY"), "SearxNG API key (optional)")
	flag.StringVar(&braveKey, "brave.key", os.Getenv("BRAVE_KEY"), "Brave Search API subscription token")
	flag.StringVar(&searchFile, "search.file", os.Getenv("SEARCH_FILE"), "Path to JSON file for the offline file engine")
	flag.StringVar(&userAgent, "ua", "metasearch/1.0 (+https://github.com/hyperifyio/metasearch)", "Custom User-Agent for upstream requests")
	flag.DurationVar(&engineTimeout, "engine.timeout", 0, "Per-engine deadline (default 10s)")
	flag.DurationVar(&cacheTTL, "cache.ttl", 0, "Result cache TTL (default 10m)")
	flag.IntVar(&cacheSize, "cache.size", 0, "In-process cache entry cap (default 1024)")
	flag.StringVar(&redisAddr, "redis.addr", os.Getenv("REDIS_ADDR"), "Redis address for a shared result cache; empty uses the in-process cache")
	flag.StringVar(&redisPassword, "redis.password", os.Getenv("REDIS_PASSWORD"), "Redis password")
	flag.IntVar(&redisDB, "redis.db", 0, "Redis database number")
	flag.StringVar(&configPath, "config", "", "Path to YAML config file (flags take precedence)")
	flag.StringVar(&envFile, "env", "", "Path to dotenv file loaded before flags are read")
	flag.BoolVar(&asJSON, "json", false, "Print results as JSON")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.LoadEnvFiles(envFile); err != nil {
		log.Error().Err(err).Msg("load env file")
		os.Exit(1)
	}

	cfg := app.Config{
		Engines:       splitList(engines),
		SearxURL:      searxURL,
		SearxKey:      searxKey,
		BraveKey:      braveKey,
		SearchFile:    searchFile,
		UserAgent:     userAgent,
		LanguageHint:  lang,
		EngineTimeout: engineTimeout,
		CacheTTL:      cacheTTL,
		CacheSize:     cacheSize,
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		RedisDB:       redisDB,
		Verbose:       verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.LanguageHint != "" {
		tag, err := language.Parse(cfg.LanguageHint)
		if err != nil {
			log.Error().Err(err).Str("lang", cfg.LanguageHint).Msg("invalid language hint")
			os.Exit(1)
		}
		base, _ := tag.Base()
		cfg.LanguageHint = base.String()
	}

	if strings.TrimSpace(query) == "" {
		log.Error().Msg("missing -q query")
		os.Exit(1)
	}
	types, err := search.ParseQueryTypes(queryTypes)
	if err != nil {
		log.Error().Err(err).Msg("invalid -type")
		os.Exit(1)
	}
	relevancy, err := search.ParseTimeRelevancy(timeRange)
	if err != nil {
		log.Error().Err(err).Msg("invalid -time")
		os.Exit(1)
	}
	if page < 0 {
		log.Error().Int("page", page).Msg("page must be >= 0")
		os.Exit(1)
	}

	q := search.Query{
		Text:       query,
		Types:      types,
		Relevancy:  relevancy,
		Page:       page,
		SafeSearch: safeSearch,
		Language:   cfg.LanguageHint,
	}

	if err := run(cfg, splitList(useEngines), q, asJSON); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config, subset []string, q search.Query, asJSON bool) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	results, err := a.Search(context.Background(), subset, q)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}
	for i, r := range results {
		fmt.Printf("%2d. %s\n    %s\n", i+1, r.Title, r.URL)
		if r.Description != "" {
			fmt.Printf("    %s\n", r.Description)
		}
		fmt.Printf("    [%s]\n", strings.Join(r.Engines, ", "))
	}
	return nil
}

// splitList parses a comma-separated flag into a trimmed slice; an empty
// flag yields nil so "no subset" stays distinct from an empty subset.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
