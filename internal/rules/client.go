// Package rules is the HTTP gateway to the external spell-rules reference
// API. The gateway is read-only and strictly best-effort: a failed lookup
// leaves a spell displayed by name only and never blocks a save or a view.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mparker/character-vault/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type spellListResponse struct {
	Count   int                `json:"count"`
	Results []domain.SpellMeta `json:"results"`
}

// ListSpells returns the spells available to a class at a given level. The
// class must already be a canonical API key.
func (c *Client) ListSpells(ctx context.Context, class string, level int) ([]domain.SpellMeta, error) {
	q := url.Values{}
	q.Set("class", class)
	q.Set("level", fmt.Sprintf("%d", level))
	return c.listSpells(ctx, q)
}

// SearchSpells returns candidate spells matching a name, used to backfill
// missing indices on legacy entries.
func (c *Client) SearchSpells(ctx context.Context, name string) ([]domain.SpellMeta, error) {
	q := url.Values{}
	q.Set("name", name)
	return c.listSpells(ctx, q)
}

func (c *Client) listSpells(ctx context.Context, q url.Values) ([]domain.SpellMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/spells?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spells: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rules API returned status %d", resp.StatusCode)
	}

	var list spellListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode spell list: %w", err)
	}
	return list.Results, nil
}

// GetSpell fetches full metadata for a single spell by its rules index.
func (c *Client) GetSpell(ctx context.Context, index string) (*domain.SpellMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/spells/"+url.PathEscape(index), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spell %s: %w", index, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrSpellNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rules API returned status %d", resp.StatusCode)
	}

	var meta domain.SpellMeta
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode spell %s: %w", index, err)
	}
	return &meta, nil
}
