package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/opener"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/tmdb"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
		closeLog = func() error { return nil }
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version)

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client := newClient(cfg, logger)
	viewer := opener.New(cfg.Viewer.Command, cfg.Viewer.Args, logger)

	catalogSvc := service.NewCatalogService(client, logger)
	posterSvc := service.NewPosterService(viewer, cfg.TMDB.ImageBaseURL, logger)

	model := tui.NewModel(catalogSvc, posterSvc, tui.Options{
		DefaultSort:   browse.ParseSortKey(cfg.UI.DefaultSort),
		ShowInspector: cfg.UI.ShowInspector,
		FetchTimeout:  cfg.TMDB.Timeout,
		Logger:        logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// newClient builds the TMDB client from config
func newClient(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond, cfg.TMDB.Burst),
	)
}

// runSetupFlow asks for a TMDB API key and saves it
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to reel!")
	fmt.Println()
	fmt.Println("reel needs a TMDB API key. Create one at https://www.themoviedb.org/settings/api")
	fmt.Println("or set TMDB_API_KEY in your environment.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var apiKey string
	for {
		input, err := readAPIKey(reader)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		apiKey = strings.TrimSpace(input)

		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		err = verifyKeyWithSpinner(cfg, apiKey, logger)
		if errors.Is(err, domain.ErrAuthFailed) {
			fmt.Println("✗ TMDB rejected that key. Please try again.")
			fmt.Println()
			continue
		}
		if err != nil {
			// The key is opaque; only an explicit rejection blocks saving it
			fmt.Printf("! Could not verify the key (%v), saving it anyway.\n", err)
		}
		break
	}

	cfg.TMDB.APIKey = apiKey

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", config.ConfigPath())
	fmt.Println()

	return nil
}

// readAPIKey reads one line, hiding the echo when stdin is a terminal
func readAPIKey(reader *bufio.Reader) (string, error) {
	fmt.Print("Enter your TMDB API key: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return string(b), err
	}

	line, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

// verifyKeyWithSpinner fetches one discover page with the key, showing a spinner
func verifyKeyWithSpinner(cfg *config.Config, apiKey string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := tmdb.NewClient(cfg.TMDB.BaseURL, apiKey, logger)

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.Discover(ctx, 1)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err == nil {
				fmt.Println("✓ API key accepted")
			}
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
