// Package state converts the opaque state blob exchanged with callers into
// a domain.State and back. Legacy blob shapes are upgraded here, once, so
// nothing downstream ever looks at them.
package state

import (
	"github.com/mitchellh/mapstructure"

	"github.com/hammamikhairi/ottoorder/internal/domain"
)

// Blob keys.
const (
	keyCart     = "cart"
	keyCustomer = "customer_info"
	keyStep     = "step"
	keyPending  = "pending_confirmation"
)

// envelope splits a blob into known keys and everything else. Decoding
// into interface fields cannot fail, so the typed work happens per key.
type envelope struct {
	Cart     any `mapstructure:"cart"`
	Customer any `mapstructure:"customer_info"`
	Step     any `mapstructure:"step"`
	Pending  any `mapstructure:"pending_confirmation"`

	// Legacy flags, consumed by upgradeStep and never written back.
	AwaitingConfirmation any `mapstructure:"awaiting_confirmation"`
	AwaitingInfo         any `mapstructure:"awaiting_info"`
	Confirmed            any `mapstructure:"confirmed"`

	Extra map[string]any `mapstructure:",remain"`
}

type wireEntry struct {
	ID       string `mapstructure:"id"`
	Quantity any    `mapstructure:"quantity"`
	Qty      any    `mapstructure:"qty"`
}

type wireCustomer struct {
	Name          string `mapstructure:"name,omitempty"`
	Address       string `mapstructure:"address,omitempty"`
	Phone         string `mapstructure:"phone,omitempty"`
	Notes         string `mapstructure:"notes,omitempty"`
	PaymentMethod string `mapstructure:"payment_method,omitempty"`
}

// Decode reads a state blob. It never fails: malformed parts are dropped
// or replaced by defaults. A nil blob yields the initial state.
func Decode(blob map[string]any) domain.State {
	var env envelope
	if blob != nil {
		decodeEnvelope(blob, &env)
	}

	st := domain.State{
		Cart:            decodeCart(env.Cart),
		Customer:        decodeCustomer(env.Customer),
		Step:            upgradeStep(env),
		PendingFinalize: weakBool(env.Pending),
	}
	if len(env.Extra) > 0 {
		st.Extra = env.Extra
	}
	return st
}

// decodeEnvelope splits blob by exact key. Keys that differ from a known
// one only in case, such as "Cart", stay in Extra.
func decodeEnvelope(blob map[string]any, env *envelope) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    env,
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return
	}
	_ = dec.Decode(blob)
}

// upgradeStep resolves the step. A non-empty step value decides alone and
// unknown names fall back to ordering. Without one, the legacy flags are
// consulted.
func upgradeStep(env envelope) domain.Step {
	if name := weakString(env.Step); name != "" {
		step, _ := domain.StepFromString(name)
		return step
	}
	if weakBool(env.AwaitingConfirmation) {
		return domain.StepConfirmation
	}
	switch weakString(env.AwaitingInfo) {
	case "name":
		return domain.StepAwaitingName
	case "address":
		return domain.StepAwaitingAddress
	}
	return domain.StepOrdering
}

// decodeCart keeps entries with an id, merges duplicates in first-seen
// order and clamps quantities to at least one.
func decodeCart(raw any) []domain.CartEntry {
	var items []any
	if err := mapstructure.Decode(raw, &items); err != nil || len(items) == 0 {
		return nil
	}

	var cart []domain.CartEntry
	pos := make(map[string]int)
	for _, item := range items {
		var e wireEntry
		if err := mapstructure.WeakDecode(item, &e); err != nil || e.ID == "" {
			continue
		}
		qty := 1
		switch {
		case e.Quantity != nil:
			qty = weakInt(e.Quantity, 1)
		case e.Qty != nil:
			qty = weakInt(e.Qty, 1)
		}
		qty = max(qty, 1)

		if i, ok := pos[e.ID]; ok {
			cart[i].Quantity += qty
			continue
		}
		pos[e.ID] = len(cart)
		cart = append(cart, domain.CartEntry{ID: e.ID, Quantity: qty})
	}
	return cart
}

func decodeCustomer(raw any) domain.CustomerInfo {
	var c wireCustomer
	if raw != nil {
		// Partial results are kept when a single field is mistyped.
		_ = mapstructure.WeakDecode(raw, &c)
	}
	return domain.CustomerInfo{
		Name:          c.Name,
		Address:       c.Address,
		Phone:         c.Phone,
		Notes:         c.Notes,
		PaymentMethod: c.PaymentMethod,
	}
}

// Encode renders st as a blob. Unknown keys carried in Extra are written
// back unless they collide with a known key.
func Encode(st domain.State) map[string]any {
	blob := make(map[string]any, len(st.Extra)+4)
	for k, v := range st.Extra {
		blob[k] = v
	}

	cart := make([]any, 0, len(st.Cart))
	for _, e := range st.Cart {
		cart = append(cart, map[string]any{"id": e.ID, "quantity": e.Quantity})
	}
	blob[keyCart] = cart

	customer := map[string]any{}
	_ = mapstructure.Decode(wireCustomer{
		Name:          st.Customer.Name,
		Address:       st.Customer.Address,
		Phone:         st.Customer.Phone,
		Notes:         st.Customer.Notes,
		PaymentMethod: st.Customer.PaymentMethod,
	}, &customer)
	blob[keyCustomer] = customer

	blob[keyStep] = st.Step.String()
	if st.PendingFinalize {
		blob[keyPending] = true
	} else {
		delete(blob, keyPending)
	}
	return blob
}

func weakString(v any) string {
	var s string
	if v == nil || mapstructure.WeakDecode(v, &s) != nil {
		return ""
	}
	return s
}

func weakBool(v any) bool {
	var b bool
	if v == nil || mapstructure.WeakDecode(v, &b) != nil {
		return false
	}
	return b
}

func weakInt(v any, def int) int {
	var n int
	if mapstructure.WeakDecode(v, &n) != nil {
		return def
	}
	return n
}
