package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LearnedSpellRef is a spell the character knows. Index links into the
// spellDetails cache once the rules lookup has resolved it; until then the
// spell renders by name only.
type LearnedSpellRef struct {
	Name  string `json:"name"`
	Index string `json:"index,omitempty"`
	Note  string `json:"note,omitempty"`
}

// SpellBook holds learned spells per level, keyed "level0".."level9".
type SpellBook map[string]SpellList

// SpellLevelKey returns the SpellBook key for a spell level.
func SpellLevelKey(level int) string {
	return fmt.Sprintf("level%d", level)
}

// SpellList is the per-level spell collection. Legacy records stored it as a
// newline-delimited string blob; the tagged union is resolved here, at the
// decode boundary, so downstream code only ever sees refs. Marshaling always
// emits an array, which means the string shape can never survive a re-save.
type SpellList []LearnedSpellRef

func (s *SpellList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var blob string
		if err := json.Unmarshal(data, &blob); err != nil {
			*s = SpellList{}
			return nil
		}
		*s = ParseSpellLines(blob)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = SpellList{}
		return nil
	}

	refs := make(SpellList, 0, len(raw))
	for _, entry := range raw {
		var ref LearnedSpellRef
		if err := json.Unmarshal(entry, &ref); err == nil && ref.Name != "" {
			refs = append(refs, ref)
			continue
		}
		// Bare string entries show up in some hand-edited records.
		var name string
		if err := json.Unmarshal(entry, &name); err == nil && strings.TrimSpace(name) != "" {
			refs = append(refs, LearnedSpellRef{Name: strings.TrimSpace(name)})
		}
	}
	*s = refs
	return nil
}

func (s SpellList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]LearnedSpellRef(s))
}

// ParseSpellLines converts a legacy spell blob to refs: one spell per line,
// text before the first em-dash is the name, the remainder a note. Index is
// left unset for the rules lookup to resolve later.
func ParseSpellLines(blob string) SpellList {
	refs := SpellList{}
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, note, found := strings.Cut(line, "—")
		ref := LearnedSpellRef{Name: strings.TrimSpace(name)}
		if found {
			ref.Note = strings.TrimSpace(note)
		}
		if ref.Name != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// SpellMeta is the rules metadata for a single spell, as returned by the
// rules reference API and cached in Details.SpellDetails.
type SpellMeta struct {
	Index         string   `json:"index"`
	Name          string   `json:"name"`
	Level         int      `json:"level"`
	School        string   `json:"school,omitempty"`
	Range         string   `json:"range,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	Components    []string `json:"components,omitempty"`
	Material      string   `json:"material,omitempty"`
	Concentration bool     `json:"concentration,omitempty"`
	Ritual        bool     `json:"ritual,omitempty"`
	CastingTime   string   `json:"casting_time,omitempty"`
	ShortDesc     string   `json:"shortDesc,omitempty"`
	FullDesc      string   `json:"fullDesc,omitempty"`
}

// MergeSpellDetails merges freshly fetched entries into the cache
// additively. Safe with nil or partial input on either side; entries already
// cached are never discarded, so a failed lookup for one spell cannot lose
// metadata fetched for another.
func MergeSpellDetails(cache, entries map[string]SpellMeta) map[string]SpellMeta {
	if len(entries) == 0 {
		return cache
	}
	if cache == nil {
		cache = make(map[string]SpellMeta, len(entries))
	}
	for index, meta := range entries {
		if index == "" {
			continue
		}
		cache[index] = meta
	}
	return cache
}
