package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"filegrip/internal/catalog"
	"filegrip/internal/config"
	"filegrip/internal/eventbus"
	"filegrip/internal/ui"
)

func main() {
	// Set up logging
	logFile, err := os.OpenFile("filegrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	client := catalog.NewClient(cfg.APIURL)

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, configSvc, client)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			// Channel full, drop event
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventFeedPageLoaded, forward)
	bus.Subscribe(eventbus.EventFeedLoadFailed, forward)
	bus.Subscribe(eventbus.EventSuggestionsReady, forward)
	bus.Subscribe(eventbus.EventSuggestionsFailed, forward)
	bus.Subscribe(eventbus.EventConfigChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Watch the config file so dark mode toggled elsewhere takes effect
	go func() {
		if err := config.Watch(ctx, configSvc, bus); err != nil {
			log.Printf("Config watcher stopped: %v", err)
		}
	}()

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Stop the bus first; Close waits for the dispatcher, so nothing can
	// still be sending on eventChan when it closes.
	bus.Close()
	close(eventChan)
	cancel()
}
