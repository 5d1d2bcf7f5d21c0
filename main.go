package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/eiannone/keyboard"

	"github.com/devancy/docsearch/config"
	"github.com/devancy/docsearch/logging"
	"github.com/devancy/docsearch/metrics"
	"github.com/devancy/docsearch/search"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	_, logCloser, err := logging.Setup(logging.Config(cfg.Log))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	slog.Info("running docsearch")

	engine, err := buildEngine(cfg)
	if err != nil {
		slog.Error("initialization failed", "error", err)
		os.Exit(1)
	}

	mgr := metrics.NewManager(metrics.Config{
		Enabled: cfg.Metrics.Enabled,
		Port:    cfg.Metrics.Port,
		Path:    cfg.Metrics.Path,
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if mgr.Enabled() {
		go func() {
			if err := mgr.StartServer(ctx, cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
				slog.Error("metrics endpoint failed", "error", err)
			}
		}()
		slog.Info("metrics endpoint up", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
	}
	mgr.SetDocumentCount(engine.DocumentCount())

	if err := runInteractiveSearch(engine, mgr, cfg); err != nil {
		slog.Error("runtime error", "error", err)
		os.Exit(1)
	}
}

// loadConfig parses flags and layers them over file, env, and defaults.
func loadConfig() (*config.Config, error) {
	var (
		configPath string
		corpusPath string
		pageSize   int
	)
	flag.StringVar(&configPath, "config", "", "config file (yaml or json)")
	flag.StringVar(&corpusPath, "p", "", "corpus dump path (overrides config)")
	flag.IntVar(&pageSize, "n", 0, "results per page (overrides config)")
	flag.Parse()

	overrides := map[string]interface{}{}
	if corpusPath != "" {
		overrides["corpus.path"] = corpusPath
	}
	if pageSize > 0 {
		overrides["display.page_size"] = pageSize
	}
	return config.NewLoader().Load(configPath, overrides)
}

// buildEngine constructs the engine and indexes the configured corpus.
func buildEngine(cfg *config.Config) (*search.SearchServer, error) {
	engine, err := search.NewFromText(cfg.Engine.StopWords,
		search.WithShardCount(cfg.Engine.ShardCount),
		search.WithWorkerCount(cfg.Engine.WorkerCount),
	)
	if err != nil {
		return nil, err
	}

	if cfg.Corpus.Path == "" {
		slog.Info("no corpus configured, starting with an empty index")
		return engine, nil
	}

	start := time.Now()
	docs, err := search.LoadCorpus(cfg.Corpus.Path)
	if err != nil {
		return nil, err
	}
	slog.Info("corpus loaded", "path", cfg.Corpus.Path, "documents", len(docs), "took", time.Since(start))

	start = time.Now()
	indexed := 0
	for _, doc := range docs {
		if err := engine.AddCorpusDocument(doc); err != nil {
			slog.Warn("skipping document", "id", doc.ID, "error", err)
			continue
		}
		indexed++
	}
	slog.Info("corpus indexed", "documents", indexed, "took", time.Since(start))
	return engine, nil
}

// runInteractiveSearch drives the query loop.
func runInteractiveSearch(engine *search.SearchServer, mgr *metrics.Manager, cfg *config.Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".docsearch_history.tmp",
		InterruptPrompt: "^C\n",
		EOFPrompt:       "exit\n",
		HistoryLimit:    100,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	meter := search.NewRequestMeter(engine)

	fmt.Println("Enter a query (prefix a term with '-' to exclude it).")
	fmt.Println("Commands: :match <id> <query> | :freq <id> | :remove <id> | :dedup | :stats | exit")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				fmt.Println("\nExiting...")
				return nil
			}
			continue
		}
		if err == io.EOF || strings.TrimSpace(line) == "exit" {
			fmt.Println("\nExiting...")
			return nil
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ":") {
			runCommand(engine, meter, input)
			mgr.SetDocumentCount(engine.DocumentCount())
			continue
		}

		start := time.Now()
		results, err := meter.FindTop(input)
		took := time.Since(start)
		mgr.ObserveQuery(took, len(results), err)
		mgr.SetZeroResultWindow(meter.ZeroResultCount())
		if err != nil {
			fmt.Printf("Bad query: %v\n", err)
			continue
		}
		slog.Debug("query executed", "query", input, "results", len(results), "took", took)
		displayResults(results, cfg.Display.PageSize)
	}
}

// runCommand handles the ':'-prefixed inspection commands.
func runCommand(engine *search.SearchServer, meter *search.RequestMeter, input string) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":match":
		if len(fields) < 3 {
			fmt.Println("usage: :match <id> <query>")
			return
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Println("usage: :match <id> <query>")
			return
		}
		words, status, err := engine.MatchDocument(strings.Join(fields[2:], " "), id)
		if err != nil {
			fmt.Printf("Match failed: %v\n", err)
			return
		}
		fmt.Printf("Document %d [%s] matches: %s\n", id, status, strings.Join(words, " "))
	case ":freq":
		id, ok := parseIDArg(fields, ":freq")
		if !ok {
			return
		}
		freqs := engine.WordFrequencies(id)
		terms := make([]string, 0, len(freqs))
		for term := range freqs {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			fmt.Printf("  %-24s %.4f\n", term, freqs[term])
		}
	case ":remove":
		id, ok := parseIDArg(fields, ":remove")
		if !ok {
			return
		}
		engine.RemoveDocument(id)
		fmt.Printf("Removed document %d (%d remain)\n", id, engine.DocumentCount())
	case ":dedup":
		removed := search.RemoveDuplicates(engine)
		fmt.Printf("Removed %d duplicate documents (%d remain)\n", removed, engine.DocumentCount())
	case ":stats":
		fmt.Printf("Documents: %d\n", engine.DocumentCount())
		fmt.Printf("Zero-result queries in window: %d\n", meter.ZeroResultCount())
	default:
		fmt.Printf("Unknown command %s\n", fields[0])
	}
}

func parseIDArg(fields []string, command string) (int, bool) {
	if len(fields) != 2 {
		fmt.Printf("usage: %s <id>\n", command)
		return 0, false
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		fmt.Printf("usage: %s <id>\n", command)
		return 0, false
	}
	return id, true
}

// displayResults prints ranked results a page at a time, paging on Enter.
func displayResults(results []search.Document, pageSize int) {
	if len(results) == 0 {
		fmt.Println("No matches found.")
		return
	}

	fmt.Println("\nResults (sorted by relevance):")
	fmt.Println(strings.Repeat("-", 60))

	for start := 0; start < len(results); start += pageSize {
		end := min(start+pageSize, len(results))
		for i := start; i < end; i++ {
			doc := results[i]
			fmt.Printf("%d. document %d\n", i+1, doc.ID)
			fmt.Printf("   relevance: %.6f  rating: %d\n", doc.Relevance, doc.Rating)
			fmt.Println(strings.Repeat("-", 60))
		}
		if end == len(results) {
			fmt.Println("End of results.")
			return
		}
		fmt.Printf("Press Enter for the next %d results, any other key to stop...\n", min(pageSize, len(results)-end))
		if !waitForEnter() {
			return
		}
	}
}

// waitForEnter reads a single key and reports whether it was Enter.
func waitForEnter() bool {
	_, key, err := keyboard.GetSingleKey()
	if err != nil {
		return false
	}
	return key == keyboard.KeyEnter
}
