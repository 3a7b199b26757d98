package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/newsdesk/internal/app"
	"github.com/MrSnakeDoc/newsdesk/internal/config"
	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/tui"
	"github.com/MrSnakeDoc/newsdesk/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	printMode := flag.Bool("print", false, "print the article list instead of starting the terminal UI")
	category := flag.String("category", "general", "category listed by -print")
	search := flag.String("search", "", "search query listed by -print")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.Load()

	if *printMode {
		c, err := domain.ParseCategory(*category)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}

		// Print mode has no UI to corrupt, so logs go to stderr
		loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
		defer func() { _ = loggerClient.Sync() }()

		src, err := app.NewSource(cfg, loggerClient)
		if err != nil {
			log.Fatalf("❌ newsdesk failed to start: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = app.Print(ctx, os.Stdout, src, app.PrintOptions{
			Category: c,
			Query:    *search,
			Timeout:  cfg.FetchTimeout,
			Logger:   loggerClient,
		})
		if err != nil {
			stop()
			log.Fatalf("❌ %v", err)
		}
		return
	}

	loggerClient := logger.NewFile(cfg.LogFile, cfg.LogLevel, false)
	defer func() { _ = loggerClient.Sync() }()
	loggerClient.Info(version.String())

	src, err := app.NewSource(cfg, loggerClient)
	if err != nil {
		log.Fatalf("❌ newsdesk failed to start: %v", err)
	}

	model := tui.New(tui.Options{
		Source:           src,
		Timeout:          cfg.FetchTimeout,
		CarouselInterval: cfg.CarouselInterval,
		CarouselSize:     cfg.CarouselSize,
		Logger:           loggerClient,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("❌ newsdesk exited with error: %v", err)
	}
}
