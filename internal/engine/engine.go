// Package engine implements the order dialogue state machine. One call to
// Process handles one user message: it recognizes the intent, applies it
// to the cart and customer slots, and returns the reply with the new
// state.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/hammamikhairi/ottoorder/internal/cart"
	"github.com/hammamikhairi/ottoorder/internal/catalog"
	"github.com/hammamikhairi/ottoorder/internal/checkout"
	"github.com/hammamikhairi/ottoorder/internal/conversation"
	"github.com/hammamikhairi/ottoorder/internal/domain"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithClock replaces time.Now for opening-hours checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLocation sets the time zone the opening hours are written in.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// Engine runs conversation turns. It holds only configuration and is safe
// for concurrent use; turns of one conversation must still be serialized
// by the caller.
type Engine struct {
	recognizer conversation.Recognizer
	log        *logger.Logger
	now        func() time.Time
	loc        *time.Location
}

// New creates an engine with the given recognizer and options.
func New(recognizer conversation.Recognizer, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		recognizer: recognizer,
		log:        log,
		now:        time.Now,
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// turn is the working set of a single Process call.
type turn struct {
	cat     *domain.Catalog
	idx     catalog.Index
	st      domain.State
	ledger  *cart.Ledger
	message string
	link    string
}

// Process handles one message. st is not modified; the returned reply
// carries the new state.
func (e *Engine) Process(ctx context.Context, cat *domain.Catalog, message string, st domain.State) domain.Reply {
	t := &turn{
		cat:     cat,
		idx:     catalog.BuildIndex(cat),
		st:      st.Clone(),
		message: message,
	}
	t.ledger = cart.New(cat, &t.st.Cart)

	if phone, ok := normalizePhone(message); ok {
		e.log.Debug("phone updated from message")
		t.st.Customer.Phone = phone
	}

	intent := e.recognizer.Recognize(message, t.idx)
	before := t.st.Step

	var text string
	switch t.st.Step {
	case domain.StepAwaitingName, domain.StepAwaitingAddress:
		text = t.handleCustomerInfo(intent)
	case domain.StepConfirmation:
		text = t.handleConfirmation(intent)
	default:
		text = t.handleGeneral(intent)
	}

	if notice := e.closedNotice(cat); notice != "" {
		text = notice + "\n\n" + text
	}

	e.log.Debug("turn: intent=%s step %s -> %s cart=%d link=%v",
		intent.Type, before, t.st.Step, len(t.st.Cart), t.link != "")

	return domain.Reply{Text: text, State: t.st, HandoffLink: t.link}
}

// closedNotice returns the advisory closed-hours line, or "" when open.
func (e *Engine) closedNotice(cat *domain.Catalog) string {
	now := e.now().In(e.loc)
	if catalog.IsOpen(cat, now) {
		return ""
	}
	hours, _ := catalog.ServiceHours(cat, now)
	return LineClosed(catalog.PrettyHours(hours))
}

func (t *turn) handleCustomerInfo(intent domain.Intent) string {
	switch intent.Type {
	case domain.IntentShowMenu, domain.IntentShowPromotions, domain.IntentAddItem, domain.IntentRemoveItem:
		text := t.handleGeneral(intent)
		if reminder := t.missingInfoReminder(); reminder != "" {
			text += "\n\n" + reminder
		}
		return text
	case domain.IntentConfirm:
		return LineInfoBeforeConfirm()
	}

	if t.st.Step == domain.StepAwaitingName {
		name := extractName(t.message)
		if !validName(name) {
			return LineBadName()
		}
		t.st.Customer.Name = name
		t.st.Step = domain.StepAwaitingAddress
		return LineNameThanks()
	}

	address := extractAddress(t.message)
	if !validAddress(address) {
		return LineBadAddress()
	}
	t.st.Customer.Address = address
	t.st.Step = domain.StepOrdering

	if t.st.PendingFinalize {
		t.st.PendingFinalize = false
		return t.finalize()
	}
	return LineAddressSaved()
}

func (t *turn) handleConfirmation(intent domain.Intent) string {
	switch intent.Type {
	case domain.IntentConfirm:
		return t.finalize()
	case domain.IntentShowMenu, domain.IntentShowPromotions:
		return t.handleGeneral(intent) + "\n\n" + LineConfirmPrompt()
	case domain.IntentEdit:
		t.st.Step = domain.StepOrdering
		return LineBackToOrdering()
	case domain.IntentAddItem, domain.IntentRemoveItem:
		return t.handleGeneral(intent) + "\n\n" + t.summaryWithPrompt()
	default:
		return LineConfirmOrEdit()
	}
}

func (t *turn) handleGeneral(intent domain.Intent) string {
	switch intent.Type {
	case domain.IntentShowMenu:
		return LineMenu(t.cat)
	case domain.IntentShowPromotions:
		return LinePromotions(t.cat.Promotions)
	case domain.IntentAddItem:
		return t.add(intent)
	case domain.IntentRemoveItem:
		return t.remove(intent)
	case domain.IntentFinish:
		if !t.ledger.HasItems() {
			return LineEmptyCartOnFinish()
		}
		t.st.Step = domain.StepConfirmation
		return t.summaryWithPrompt()
	case domain.IntentConfirm:
		return LineSayFinish()
	default:
		return LineHelp()
	}
}

func (t *turn) add(intent domain.Intent) string {
	item := intent.Item
	t.ledger.Add(item.ID, intent.Quantity)

	parts := []string{LineAdded(intent.Quantity, item.Name, t.ledger.Total())}
	for _, p := range t.cat.Promotions {
		if p.Trigger == item.ID {
			parts = append(parts, p.Message)
		}
	}
	if !t.ledger.HasBeverageCategory() {
		if bev, ok := t.idx.FirstBeverage(); ok {
			parts = append(parts, LineUpsell(bev.Item))
		}
	}
	parts = append(parts, LineFinishHint())
	return strings.Join(parts, " ")
}

func (t *turn) remove(intent domain.Intent) string {
	item := intent.Item
	if !t.ledger.Remove(item.ID, intent.Quantity) {
		return LineNotInCart()
	}
	if !t.ledger.HasItems() {
		return LineCartEmptied()
	}
	return LineRemoved(intent.Quantity, item.Name, t.ledger.Total())
}

func (t *turn) summaryWithPrompt() string {
	return t.ledger.Summary() + "\n\n" + LineConfirmPrompt()
}

func (t *turn) missingInfoReminder() string {
	switch {
	case t.st.Customer.Name == "":
		return LineNeedName()
	case t.st.Customer.Address == "":
		return LineNeedAddress()
	default:
		return ""
	}
}

// finalize completes checkout or steers the dialogue to whatever is still
// missing.
func (t *turn) finalize() string {
	if !t.ledger.HasItems() {
		t.st.Step = domain.StepOrdering
		return LineEmptyCartOnConfirm()
	}
	if t.st.Customer.Name == "" {
		t.st.Step = domain.StepAwaitingName
		t.st.PendingFinalize = true
		return LineAskName()
	}
	if t.st.Customer.Address == "" {
		t.st.Step = domain.StepAwaitingAddress
		t.st.PendingFinalize = true
		return LineAskAddress()
	}
	if phone := t.st.Customer.Phone; phone != "" {
		if _, ok := normalizePhone(phone); !ok {
			return LineBadPhone()
		}
	}

	msg := checkout.Message(t.cat, t.ledger.Lines(), t.st.Customer)
	t.link = checkout.Link(t.cat.WhatsAppNumber, msg)
	t.st.Step = domain.StepOrdering
	t.st.PendingFinalize = false
	return LineOrderConfirmed()
}
