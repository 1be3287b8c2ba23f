package rules_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRulesAPI serves a fixed spell catalog over the reference API's routes.
func stubRulesAPI(t *testing.T, catalog []domain.SpellMeta) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/spells", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		var results []domain.SpellMeta
		for _, meta := range catalog {
			if name != "" && !containsFold(meta.Name, name) {
				continue
			}
			results = append(results, meta)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count":   len(results),
			"results": results,
		})
	})
	mux.HandleFunc("/spells/", func(w http.ResponseWriter, r *http.Request) {
		index := r.URL.Path[len("/spells/"):]
		for _, meta := range catalog {
			if meta.Index == index {
				json.NewEncoder(w).Encode(meta)
				return
			}
		}
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

var catalog = []domain.SpellMeta{
	{Index: "fireball", Name: "Fireball", Level: 3},
	{Index: "fire-bolt", Name: "Fire Bolt", Level: 0},
	{Index: "shield", Name: "Shield", Level: 1},
}

func TestClient_ListSpells(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	spells, err := client.ListSpells(context.Background(), "wizard", 3)
	require.NoError(t, err)
	assert.Len(t, spells, 3)
}

func TestClient_GetSpell(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	meta, err := client.GetSpell(context.Background(), "fireball")
	require.NoError(t, err)
	assert.Equal(t, "Fireball", meta.Name)
	assert.Equal(t, 3, meta.Level)
}

func TestClient_GetSpellNotFound(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	_, err := client.GetSpell(context.Background(), "wish")
	assert.ErrorIs(t, err, domain.ErrSpellNotFound)
}

func TestClient_Backfill_ResolvesAndCaches(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	details := domain.Details{
		Spells: domain.SpellBook{
			"level1": {{Name: "Shield"}},
			"level3": {{Name: "fireball"}},
		},
	}

	added := client.Backfill(context.Background(), &details)

	assert.Equal(t, 2, added)
	assert.Equal(t, "shield", details.Spells["level1"][0].Index)
	assert.Equal(t, "fireball", details.Spells["level3"][0].Index, "exact match is case-insensitive")
	assert.Contains(t, details.SpellDetails, "shield")
	assert.Contains(t, details.SpellDetails, "fireball")
}

func TestClient_Backfill_FirstCandidateWhenNoExactMatch(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	// "Fire" matches both Fireball and Fire Bolt but equals neither, so the
	// first candidate wins.
	details := domain.Details{
		Spells: domain.SpellBook{"level0": {{Name: "Fire"}}},
	}

	client.Backfill(context.Background(), &details)
	assert.Equal(t, "fireball", details.Spells["level0"][0].Index)
}

func TestClient_Backfill_UnknownSpellIsNonFatal(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	details := domain.Details{
		Spells: domain.SpellBook{
			"level1": {{Name: "Totally Homebrew"}, {Name: "Shield"}},
		},
	}

	added := client.Backfill(context.Background(), &details)

	assert.Equal(t, 1, added)
	assert.Empty(t, details.Spells["level1"][0].Index, "unresolvable spell keeps rendering by name")
	assert.Equal(t, "shield", details.Spells["level1"][1].Index)
}

func TestClient_Backfill_AdditiveMerge(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	details := domain.Details{
		Spells: domain.SpellBook{"level1": {{Name: "Shield", Index: "shield"}}},
		SpellDetails: map[string]domain.SpellMeta{
			"mage-armor": {Index: "mage-armor", Name: "Mage Armor", Level: 1},
		},
	}

	added := client.Backfill(context.Background(), &details)

	assert.Equal(t, 1, added)
	assert.Contains(t, details.SpellDetails, "mage-armor", "existing cache entries survive")
	assert.Contains(t, details.SpellDetails, "shield")
}

func TestClient_Backfill_CachedIndexNotRefetched(t *testing.T) {
	server := stubRulesAPI(t, catalog)
	client := rules.NewClient(server.URL, 5*time.Second)

	details := domain.Details{
		Spells: domain.SpellBook{"level1": {{Name: "Shield", Index: "shield"}}},
		SpellDetails: map[string]domain.SpellMeta{
			"shield": {Index: "shield", Name: "Shield", Level: 1},
		},
	}

	assert.Equal(t, 0, client.Backfill(context.Background(), &details))
}

func TestClient_Backfill_DownServerIsNonFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	client := rules.NewClient(server.URL, time.Second)

	details := domain.Details{
		Spells: domain.SpellBook{"level1": {{Name: "Shield"}}},
	}

	assert.Equal(t, 0, client.Backfill(context.Background(), &details))
	assert.Empty(t, details.Spells["level1"][0].Index)
}

func TestClient_BackfillNil(t *testing.T) {
	client := rules.NewClient("http://127.0.0.1:0", time.Second)
	assert.Equal(t, 0, client.Backfill(context.Background(), nil))
}
