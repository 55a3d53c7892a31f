package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottoorder/internal/cart"
	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/conversation"
	"github.com/hammamikhairi/ottoorder/internal/display"
	"github.com/hammamikhairi/ottoorder/internal/domain"
	"github.com/hammamikhairi/ottoorder/internal/engine"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

// defaultChatLog keeps log lines out of the terminal UI when no log
// file is configured.
const defaultChatLog = ".ottoorder-logs/chat.log"

// quitWords end the local chat. They never reach the engine.
var quitWords = map[string]bool{"sair": true, "quit": true, "exit": true}

func newChatCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <restaurant-id>",
		Short: "Chat with a restaurant in the terminal",
		Long: `Play the customer side of a conversation locally.

The conversation state lives in this process and is passed to the engine
on every turn, exactly as an HTTP caller would. Type 'sair' to leave.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts, args[0])
		},
	}

	cmd.Flags().String("catalog-dir", "catalogs", "directory holding catalog documents")
	cmd.Flags().String("timezone", "America/Sao_Paulo", "time zone the opening hours are written in")

	return cmd
}

func runChat(cmd *cobra.Command, opts *rootOptions, restaurantID string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultChatLog
	}
	log, closer := newLogger(cfg)
	defer closer.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	source := catalog.NewDirSource(cfg.Catalog.Dir, log)
	cat, err := source.Get(cmd.Context(), restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no catalog for %q in %s", restaurantID, cfg.Catalog.Dir)
		}
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s := &chatSession{
		id:           uuid.NewString(),
		restaurantID: restaurantID,
		source:       source,
		engine:       engine.New(conversation.NewKeywordRecognizer(log), log, engine.WithLocation(loc)),
		loc:          loc,
		log:          log,
	}
	s.ui = display.NewUI(s.status(cat))
	s.notifier = conversation.NewCLINotifier(log,
		func(format string, a ...interface{}) { s.ui.PrintChat(fmt.Sprintf(format, a...)) },
		true,
		conversation.WithUrgentPrint(func(format string, a ...interface{}) {
			s.ui.PrintUrgent(fmt.Sprintf(format, a...))
		}),
	)

	fmt.Println(display.RenderBanner(cat.Name))
	fmt.Println(display.BannerStyle.Render("  Digite 'menu' para ver o cardapio, 'sair' para encerrar."))
	fmt.Println()

	log.Info("chat %s started for %s", s.id, restaurantID)

	go func() {
		s.ui.WaitReady()
		s.run(ctx)
		s.ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := s.ui.Run(); err != nil {
		log.Error("display: %v", err)
		return err
	}
	log.Info("chat %s ended", s.id)
	return nil
}

// chatSession is one local conversation. Only the run goroutine touches
// the state.
type chatSession struct {
	id           string
	restaurantID string
	source       domain.CatalogSource
	engine       *engine.Engine
	notifier     domain.Notifier
	ui           *display.UI
	loc          *time.Location
	log          *logger.Logger
	state        domain.State
}

func (s *chatSession) run(ctx context.Context) {
	s.notifier.Notify(ctx, engine.LineHelp())

	input := s.ui.InputChan()
	for {
		var line string
		select {
		case <-ctx.Done():
			return
		case <-s.ui.QuitChan():
			return
		case line = <-input:
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quitWords[strings.ToLower(line)] {
			return
		}
		s.turn(ctx, line)
	}
}

// turn reloads the catalog so edits show up mid-conversation, then runs
// one engine turn.
func (s *chatSession) turn(ctx context.Context, message string) {
	cat, err := s.source.Get(ctx, s.restaurantID)
	if err != nil {
		s.log.Error("chat %s: loading catalog: %v", s.id, err)
		s.notifier.NotifyUrgent(ctx, "Nao consegui carregar o cardapio: "+err.Error())
		return
	}

	reply := s.engine.Process(ctx, cat, message, s.state)
	s.state = reply.State

	s.notifier.Notify(ctx, reply.Text)
	if reply.HandoffLink != "" {
		s.ui.PrintLink(reply.HandoffLink)
	}
	s.ui.SetStatus(s.status(cat))
}

func (s *chatSession) status(cat *domain.Catalog) display.Status {
	entries := s.state.Cart
	ledger := cart.New(cat, &entries)

	items := 0
	for _, l := range ledger.Lines() {
		items += l.Quantity
	}

	total := ledger.Subtotal()
	if items > 0 {
		total = ledger.Total()
	}

	return display.Status{
		Restaurant: cat.Name,
		Step:       s.state.Step.String(),
		Items:      items,
		Total:      cart.Money(total),
		Open:       catalog.IsOpen(cat, time.Now().In(s.loc)),
	}
}
