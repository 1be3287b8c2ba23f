package rules

import (
	"context"
	"log"
	"strings"

	"github.com/mparker/character-vault/internal/domain"
)

// Backfill resolves missing indices on learned spells by name and lazily
// fetches metadata for indices not yet cached, merging results additively
// into the spellDetails cache. Partial failure is expected and tolerated:
// every miss is logged and skipped, and the count of entries added is
// returned. Backfill never replaces the cache wholesale, so a slow or failed
// lookup for one spell cannot discard metadata already fetched for another.
func (c *Client) Backfill(ctx context.Context, d *domain.Details) int {
	if d == nil {
		return 0
	}

	for key, list := range d.Spells {
		for i, ref := range list {
			if ref.Index != "" || strings.TrimSpace(ref.Name) == "" {
				continue
			}
			index, ok := c.resolveIndex(ctx, ref.Name)
			if !ok {
				continue
			}
			list[i].Index = index
		}
		d.Spells[key] = list
	}

	fetched := map[string]domain.SpellMeta{}
	for _, list := range d.Spells {
		for _, ref := range list {
			if ref.Index == "" {
				continue
			}
			if _, cached := d.SpellDetails[ref.Index]; cached {
				continue
			}
			if _, done := fetched[ref.Index]; done {
				continue
			}
			meta, err := c.GetSpell(ctx, ref.Index)
			if err != nil {
				log.Printf("WARN [rules.Backfill] spell %s: %v", ref.Index, err)
				continue
			}
			fetched[ref.Index] = *meta
		}
	}

	d.SpellDetails = domain.MergeSpellDetails(d.SpellDetails, fetched)
	return len(fetched)
}

// resolveIndex finds the rules index for a spell name: an exact
// case-insensitive match wins, otherwise the first candidate.
func (c *Client) resolveIndex(ctx context.Context, name string) (string, bool) {
	candidates, err := c.SearchSpells(ctx, name)
	if err != nil {
		log.Printf("WARN [rules.Backfill] search %q: %v", name, err)
		return "", false
	}
	if len(candidates) == 0 {
		return "", false
	}
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.Name, name) {
			return candidate.Index, true
		}
	}
	return candidates[0].Index, true
}
