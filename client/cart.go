package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/kartify-in/storefront-api/errs"
)

// CartStore keeps a local copy of the user's remote cart. Every mutation does
// a full re-fetch afterwards instead of an optimistic merge; an extra round
// trip buys consistency, acceptable at cart sizes of tens of items. The
// loading flag is advisory only: it lets the UI disable buttons, it is not a
// lock, and overlapping mutations resolve last-write-wins on the server.
type CartStore struct {
	api *Client

	mu      sync.Mutex
	cart    Cart
	loading bool
	gen     uint64 // bumped per refresh and on Close; stale responses are dropped
	closed  bool
}

func NewCartStore(api *Client) *CartStore {
	return &CartStore{api: api}
}

// Cart returns the last synced snapshot.
func (s *CartStore) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *CartStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Close detaches the store from its view. In-flight refreshes finish but
// their responses are discarded rather than applied to a dead view.
func (s *CartStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
}

func (s *CartStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Refresh re-fetches the full cart state. A refresh that was superseded by a
// newer one (or by Close) drops its response instead of applying stale state.
func (s *CartStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	cart, err := s.api.FetchCart(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return nil
	}
	s.cart = *cart
	return nil
}

// AddItem adds qty of a product (default 1), then re-syncs.
func (s *CartStore) AddItem(ctx context.Context, productID uint, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if !s.api.authenticated() {
		return errs.AuthRequired()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	body := map[string]interface{}{"product_id": productID, "quantity": qty}
	if err := s.api.do(ctx, http.MethodPost, "/user/cart/items", body, nil); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// UpdateQuantity sets the absolute quantity; qty <= 0 removes the line.
// Without a session this is a silent no-op, not a security boundary; every
// mutation endpoint re-checks auth server-side.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID uint, qty int) error {
	if !s.api.authenticated() {
		return nil
	}
	if qty <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	path := fmt.Sprintf("/user/cart/items/%d", productID)
	if err := s.api.do(ctx, http.MethodPut, path, map[string]interface{}{"quantity": qty}, nil); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// RemoveItem deletes a line. Removing an absent item succeeds.
func (s *CartStore) RemoveItem(ctx context.Context, productID uint) error {
	if !s.api.authenticated() {
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	path := fmt.Sprintf("/user/cart/items/%d", productID)
	if err := s.api.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Clear empties the cart. Clearing an empty cart succeeds.
func (s *CartStore) Clear(ctx context.Context) error {
	if !s.api.authenticated() {
		return nil
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.do(ctx, http.MethodDelete, "/user/cart", nil, nil); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
