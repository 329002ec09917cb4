package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"swapmeet/api"
	"swapmeet/channel"
	"swapmeet/domain"
	"swapmeet/domain/event"
	apperrors "swapmeet/errors"
	"swapmeet/internal"
	"swapmeet/negotiation"
	"swapmeet/observability"
	"swapmeet/projection"
	"swapmeet/repositories"
	"swapmeet/runtime/workers"
	"swapmeet/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages their lifecycle, and centralizes
// error reporting so every defer (like database cleanup) executes before the
// process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Local storage (BadgerDB) for the persisted session token
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Collaborator client & session store
	// The client needs the store's token and the store needs the client, so
	// the token source is bound late through the closure.
	var store *session.Store
	client := api.NewClient(log, config.APIBaseURL, config.HTTPTimeout, func() string {
		if store == nil {
			return ""
		}
		return store.Snapshot().Token
	})
	tokens := repositories.NewTokenRepository(db)
	store = session.NewStore(log, client, tokens)

	// 4. Realtime channel, negotiation and conversation read model
	tracker := observability.NewTracker()
	coordinator := channel.NewCoordinator(log, config.ChannelURL, tracker)

	viewer := func() string { return store.Snapshot().Identity.ID }
	negotiator := negotiation.NewService(log, client, coordinator, viewer)
	conversations := projection.NewAggregator(log, viewer)

	coordinator.Subscribe(event.KindChatMessageReceived, conversations)
	coordinator.Subscribe(event.KindSwapStatusChanged, negotiator)
	coordinator.Subscribe(event.KindSwapRequestCreated, negotiator)

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coordinator.BindSession(ctx, store)
	store.OnAuthChange(func(authenticated bool, identity domain.Identity) {
		if authenticated {
			color.Green.Printf("Signed in as %s (%s)\n", identity.DisplayName, identity.City)
		} else {
			color.Yellow.Println("Signed out")
		}
	})

	// 6. Supervision: channel read pump + heartbeat
	heartbeat := observability.NewHeartbeatWorker(log, tracker, config.HeartbeatInterval)
	sup := workers.NewSupervisor(log, config.RestartInterval)

	done := make(chan struct{})
	go func() {
		sup.Add(coordinator, heartbeat).Run(ctx)
		close(done)
	}()

	// 7. Resume the previous session, if any
	if err := store.Restore(ctx); err != nil {
		color.Red.Println(apperrors.UserMessage(err))
	}

	// 8. Wait for shutdown, then print the session summary
	<-ctx.Done()
	log.Info("Shutting down gracefully...")

	renderSwaps(negotiator.List())
	renderConversations(conversations.Conversations())

	sup.Stop()
	<-done
	log.Info("Program stopped cleanly")

	return nil
}

func renderSwaps(views []domain.SwapView) {
	if len(views) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Swap", "Direction", "Status", "Counterparty", "Meetup", "Updated"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, view := range views {
		meetup := ""
		if view.Meetup != nil {
			meetup = fmt.Sprintf("%s %s @ %s", view.Meetup.Date, view.Meetup.Time, view.Meetup.Location)
		}
		table.Append([]string{
			view.ID.String()[:8],
			string(view.Direction),
			string(view.Status),
			view.CounterpartyID,
			meetup,
			view.UpdatedAt.Format(time.RFC822),
		})
	}
	table.Render()
}

func renderConversations(conversations []projection.Conversation) {
	if len(conversations) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Swap", "Messages", "Unread", "Last message"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, conv := range conversations {
		last := ""
		if conv.LastMessage != nil {
			last = conv.LastMessage.Text
		}
		table.Append([]string{
			conv.SwapID.String()[:8],
			fmt.Sprintf("%d", len(conv.Messages)),
			fmt.Sprintf("%d", conv.UnreadCount),
			last,
		})
	}
	table.Render()
}
