package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/whatsdish-gateway/internal/domain"
)

const (
	restaurantsTable = "restaurants"
	menuItemsTable   = "menu_items"
)

// Reader is the read-only query capability the managed store provides.
type Reader interface {
	Select(ctx context.Context, table string, query url.Values) (json.RawMessage, error)
}

// Service serves restaurant and menu listings. Rows are relayed to the
// caller exactly as the store produced them; no gateway-side reshaping.
type Service interface {
	Restaurants(ctx context.Context) (json.RawMessage, error)
	Menu(ctx context.Context, restaurantID string) (json.RawMessage, error)
}

type service struct {
	reader Reader
}

func NewService(reader Reader) Service {
	return &service{reader: reader}
}

func (s *service) Restaurants(ctx context.Context) (json.RawMessage, error) {
	rows, err := s.reader.Select(ctx, restaurantsTable, url.Values{"select": {"*"}})
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return rows, nil
}

func (s *service) Menu(ctx context.Context, restaurantID string) (json.RawMessage, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("restaurant_id is required: %w", domain.ErrInvalidRequest)
	}
	// Embedded resources pull each item's modifiers and their options in
	// one query.
	q := url.Values{
		"select":        {"*,modifiers(*,options(*))"},
		"restaurant_id": {"eq." + restaurantID},
	}
	rows, err := s.reader.Select(ctx, menuItemsTable, q)
	if err != nil {
		return nil, fmt.Errorf("list menu for restaurant %s: %w", restaurantID, err)
	}
	return rows, nil
}
