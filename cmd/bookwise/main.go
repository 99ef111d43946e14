// Package main is the BookWise CLI entry point.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bookwise/bookwise/internal/action"
	"github.com/bookwise/bookwise/internal/assistant"
	"github.com/bookwise/bookwise/internal/cart"
	"github.com/bookwise/bookwise/internal/catalog"
	"github.com/bookwise/bookwise/internal/config"
	"github.com/bookwise/bookwise/internal/dialogue"
	"github.com/bookwise/bookwise/internal/embedding"
	"github.com/bookwise/bookwise/internal/models"
	"github.com/bookwise/bookwise/internal/seed"
	"github.com/bookwise/bookwise/internal/server"
	"github.com/bookwise/bookwise/internal/store"
	"github.com/bookwise/bookwise/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/bookwise/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "bookwise server" from the project dir uses the
// project's config (including debug).
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
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "chat":
		runChat()
	case "search":
		runSearch()
	case "seed":
		runSeed()
	case "cart":
		runCart()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("bookwise version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (action dispatch, store writes, etc.)")
	_ = fs.Parse(os.Args[2:])

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

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	if cfg.Seed.CatalogPath != "" {
		n, err := components.Seeder.Run(watchCtx, cfg.Seed.CatalogPath)
		if err != nil {
			logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
		logger.Info("catalog seeded", zap.Int("books", n))
		if cfg.Seed.Watch {
			w := seed.NewWatcher(cfg.Seed.CatalogPath, components.Seeder, logger)
			if err := w.Start(watchCtx); err != nil {
				logger.Fatal("Failed to start seed watcher", zap.Error(err))
			}
		}
	}

	srv := server.NewServer(
		components.Assistant,
		components.Catalog,
		components.Cart,
		components.Seeder,
		components.Grammar,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// chatResponse mirrors the POST /api/v1/chat response body.
type chatResponse struct {
	Messages []models.Message   `json:"messages"`
	Reply    string             `json:"reply"`
	Cart     []*models.CartItem `json:"cart"`
}

// runChat is an interactive REPL against a running server. The conversation
// is held client-side and threaded through every request.
func runChat() {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	showCart := fs.Bool("cart", true, "print the cart after each turn")
	_ = fs.Parse(os.Args[2:])

	fmt.Println("BookWise. Type your message, or \"quit\" to leave.")
	var messages []models.Message
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "quit" || query == "exit" {
			return
		}

		resp, err := chatViaHTTP(*serverURL, messages, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Chat failed: %v\n", err)
			continue
		}
		messages = resp.Messages
		fmt.Println(resp.Reply)
		if *showCart {
			if len(resp.Cart) == 0 {
				fmt.Println("[cart empty]")
			} else {
				titles := make([]string, len(resp.Cart))
				for i, item := range resp.Cart {
					titles[i] = item.Title
				}
				fmt.Printf("[cart: %s]\n", strings.Join(titles, ", "))
			}
		}
	}
}

func chatViaHTTP(serverURL string, messages []models.Message, query string) (*chatResponse, error) {
	body, err := json.Marshal(map[string]interface{}{"messages": messages, "query": query})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage when server is not running)")
	title := fs.String("title", "", "title constraint")
	author := fs.String("author", "", "author constraint")
	genre := fs.String("genre", "", "genre constraint")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if *title == "" && *author == "" && *genre == "" && fs.NArg() > 0 {
		*title = strings.TrimSpace(strings.Join(fs.Args(), " "))
	}

	var books []*models.Book
	if *serverURL != "" {
		// Use HTTP API when server is running (avoids Bleve/SQLite lock conflict).
		res, err := searchViaHTTP(*serverURL, *title, *author, *genre)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		books = res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		books, err = components.Catalog.SearchStructured(context.Background(), *title, *author, *genre)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(books); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		if len(books) == 0 {
			fmt.Println("No books found.")
			return
		}
		for i, book := range books {
			fmt.Printf("%d. Title: %s, Author: %s, Genre: %s\n", i+1, book.Title, book.Author, book.Genre)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL, title, author, genre string) ([]*models.Book, error) {
	body, err := json.Marshal(map[string]string{"title": title, "author": author, "genre": genre})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/catalog/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Books []*models.Book `json:"books"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Books, nil
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	path := cfg.Seed.CatalogPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		fmt.Println("Usage: bookwise seed [flags] <books.yaml>")
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	n, err := components.Seeder.Run(context.Background(), path)
	if err != nil {
		fmt.Printf("Seeding failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded %d book(s) from %s\n", n, path)
}

func runCart() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bookwise cart <list|add|remove|clear> [title]")
		os.Exit(1)
	}
	sub := os.Args[2]
	fs := flag.NewFlagSet("cart", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	_ = fs.Parse(os.Args[3:])

	switch sub {
	case "list":
		resp, err := http.Get(*serverURL + "/api/v1/cart")
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("List failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Items []*models.CartItem `json:"items"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			fmt.Printf("Parse failed: %v\n", err)
			os.Exit(1)
		}
		if len(out.Items) == 0 {
			fmt.Println("Cart is empty.")
			return
		}
		for i, item := range out.Items {
			fmt.Printf("%d. %s\n", i+1, item.Title)
		}
	case "add":
		if fs.NArg() < 1 {
			fmt.Println("Usage: bookwise cart add <title>")
			os.Exit(1)
		}
		title := strings.Join(fs.Args(), " ")
		body, _ := json.Marshal(map[string]string{"title": title})
		resp, err := http.Post(*serverURL+"/api/v1/cart", "application/json", bytes.NewReader(body))
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Add failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		if resp.StatusCode == http.StatusCreated {
			fmt.Printf("Added: %s\n", title)
		} else {
			fmt.Printf("Already in cart: %s\n", title)
		}
	case "remove":
		if fs.NArg() < 1 {
			fmt.Println("Usage: bookwise cart remove <title>")
			os.Exit(1)
		}
		title := strings.Join(fs.Args(), " ")
		req, _ := http.NewRequest(http.MethodDelete, *serverURL+"/api/v1/cart?title="+url.QueryEscape(title), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Remove failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		var out struct {
			Removed bool `json:"removed"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		if out.Removed {
			fmt.Printf("Removed: %s\n", title)
		} else {
			fmt.Printf("Not in cart: %s\n", title)
		}
	case "clear":
		resp, err := http.Post(*serverURL+"/api/v1/cart/clear", "application/json", nil)
		if err != nil {
			fmt.Printf("Request failed: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			fmt.Printf("Clear failed (%d): %s\n", resp.StatusCode, string(b))
			os.Exit(1)
		}
		fmt.Println("Cart cleared.")
	default:
		fmt.Printf("Unknown cart subcommand: %s\n", sub)
		os.Exit(1)
	}
}

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Books     int64  `json:"books"`
	CartItems int    `json:"cart_items"`
	Grammar   string `json:"grammar"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = use direct storage)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		ctx := context.Background()
		bookCount, err := components.Catalog.Count(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count books failed: %v\n", err)
			os.Exit(1)
		}
		items, err := components.Cart.GetAll(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cart read failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Books:     bookCount,
			CartItems: len(items),
			Grammar:   string(components.Grammar),
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("books:       %d   # count of catalog entries\n", status.Books)
		fmt.Printf("cart_items:  %d   # count of cart entries\n", status.CartItems)
		fmt.Printf("grammar:     %s\n", status.Grammar)
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Store     store.Store
	Embedder  embedding.Embedder
	Engine    dialogue.Engine
	Catalog   *catalog.Catalog
	Cart      *cart.Cart
	Assistant *assistant.Assistant
	Seeder    *seed.Seeder
	Grammar   action.Grammar
}

func (c *Components) Close() {
	if c.Store != nil {
		_ = c.Store.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func newEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewOpenAIEmbedder(
			os.Getenv(cfg.Embedding.APIKeyEnv),
			cfg.Embedding.BaseURL,
			cfg.Embedding.Model,
			cfg.Embedding.Dimensions,
			cfg.Embedding.CacheSize,
		)
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimensions), nil
	default:
		onnxEmbedder, err := embedding.NewONNXEmbedder(
			cfg.Embedding.ModelPath,
			cfg.Embedding.Dimensions,
			cfg.Embedding.MaxTokens,
			cfg.Embedding.CacheSize,
		)
		if err != nil {
			// Deterministic mock keeps the service usable without the model.
			return embedding.NewMockEmbedder(cfg.Embedding.Dimensions), nil
		}
		return onnxEmbedder, nil
	}
}

func newEngine(cfg *config.Config) (dialogue.Engine, error) {
	switch cfg.Dialogue.Provider {
	case "stub":
		return dialogue.NewStubEngine("Hello! How can I help you find a book today?"), nil
	default:
		return dialogue.NewOpenAIEngine(
			os.Getenv(cfg.Dialogue.APIKeyEnv),
			cfg.Dialogue.BaseURL,
			cfg.Dialogue.Model,
			cfg.Dialogue.Temperature,
		)
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	storeOpts := []store.Option{}
	if debug && logger != nil {
		storeOpts = append(storeOpts, store.WithLogger(logger))
	}
	st, err := store.Open(cfg.Storage.DatabasePath, cfg.Storage.IndexPath, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		_ = st.Close()
		_ = embedder.Close()
		return nil, fmt.Errorf("failed to initialize dialogue engine: %w", err)
	}

	ctx := context.Background()
	catOpts := []catalog.Option{
		catalog.WithRecommendTopK(cfg.Search.RecommendTopK),
		catalog.WithExcludeSelf(cfg.Search.ExcludeSelf),
	}
	cartOpts := []cart.Option{}
	asstOpts := []assistant.Option{}
	if debug && logger != nil {
		catOpts = append(catOpts, catalog.WithLogger(logger))
		cartOpts = append(cartOpts, cart.WithLogger(logger))
		asstOpts = append(asstOpts, assistant.WithLogger(logger))
	}
	cat, err := catalog.New(ctx, st, embedder, catOpts...)
	if err != nil {
		_ = st.Close()
		_ = embedder.Close()
		return nil, err
	}
	crt, err := cart.New(ctx, st, embedder, cartOpts...)
	if err != nil {
		_ = st.Close()
		_ = embedder.Close()
		return nil, err
	}

	grammar := action.Grammar(cfg.Search.Grammar)
	parser := action.NewParser(grammar)
	asst := assistant.New(engine, cat, crt, parser, asstOpts...)
	seeder := seed.NewSeeder(cat, logger)

	return &Components{
		Store:     st,
		Embedder:  embedder,
		Engine:    engine,
		Catalog:   cat,
		Cart:      crt,
		Assistant: asst,
		Seeder:    seeder,
		Grammar:   grammar,
	}, nil
}

func printUsage() {
	fmt.Println(`bookwise - Conversational book shop assistant

Usage:
  bookwise server [flags]           Start the HTTP server
  bookwise chat [flags]             Interactive chat against a running server
  bookwise search [flags] [title]   Search the catalog
  bookwise seed [flags] [file]      Replace the catalog from a YAML book list
  bookwise cart <list|add|remove|clear> [title]
                                    Manage the shopping cart
  bookwise status [flags]           Show catalog/cart status
  bookwise version                  Show version
  bookwise help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/bookwise/config.yaml)
  --debug            Enable debug logging (action dispatch, store writes, etc.)

Chat Flags:
  --server string    Server URL (default: http://localhost:8080)
  --cart             Print the cart after each turn (default: true)

Search Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") to use direct storage when server is not running.
  --title string     Title constraint (positional args work too)
  --author string    Author constraint
  --genre string     Genre constraint
  --output string    Output format: text or json (default: text)

Seed Flags:
  --config string    Config file path (seed path defaults to the configured catalog_path)

Cart Flags:
  --server string    Server URL (default: http://localhost:8080)

Status Flags:
  --config string    Config file path (for direct storage mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct storage.
  --output string    Output format: text or json (default: text)

Examples:
  bookwise server
  bookwise chat
  bookwise search --author "George Orwell"
  bookwise search 1984
  bookwise seed data/books.yaml
  bookwise cart add "The Hobbit"
  bookwise cart list
  bookwise status --output json`)
}
