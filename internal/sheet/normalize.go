// Package sheet holds the pure calculation pipeline: legacy normalization,
// modifier aggregation, derived stats and the prepared-spell engine. Nothing
// here performs I/O or mutates its input; every function is safe to call on
// each render.
package sheet

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/mparker/character-vault/internal/domain"
)

// Normalize converts a possibly-partial Details record into the canonical
// model: items sorted by sortOrder, legacy free-text lines migrated into
// items, legacy singular armor/weapon modifiers folded into modifier arrays,
// and every modifier target mapped to its enum key.
//
// Normalize is idempotent and never fails. Malformed fields degrade to the
// safest representation (a text item, a dropped modifier) independently of
// one another; a corrupt armor entry does not block spell normalization.
func Normalize(d domain.Details) domain.Details {
	out := d

	out.Items = normalizeItems(d.Items)

	// Track names already present so re-running never migrates a line twice.
	seen := make(map[string]bool, len(out.Items))
	for _, item := range out.Items {
		seen[itemKey(item.Name)] = true
	}
	for _, blob := range []string{d.Inventory, d.Equipment, d.WeaponsExtra} {
		for _, line := range strings.Split(blob, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			item := ParseLegacyLine(line)
			if seen[itemKey(item.Name)] {
				continue
			}
			seen[itemKey(item.Name)] = true
			out.Items = append(out.Items, item)
		}
	}

	if len(d.Armors) > 0 {
		out.Armors = make([]domain.LegacyArmor, len(d.Armors))
		for i, armor := range d.Armors {
			armor.Modifiers = foldLegacyModifiers(armor.Modifiers, armor.Ability, armor.Modifier)
			out.Armors[i] = armor
		}
	}
	if d.WeaponEquipped != nil {
		weapon := *d.WeaponEquipped
		weapon.Modifiers = foldLegacyModifiers(weapon.Modifiers, weapon.Ability, weapon.Modifier)
		out.WeaponEquipped = &weapon
	}

	return out
}

func normalizeItems(items []domain.Item) []domain.Item {
	if len(items) == 0 {
		return nil
	}

	// Items with a sort key order by it; the rest keep encounter order at the
	// tail. Both partitions are stable.
	keyed := make([]domain.Item, 0, len(items))
	unkeyed := make([]domain.Item, 0)
	for _, item := range items {
		item.Modifiers = normalizeModifiers(item.Modifiers)
		if item.Kind == "" {
			item.Kind = domain.ItemKindJSON
		}
		if item.SortOrder != nil {
			keyed = append(keyed, item)
		} else {
			unkeyed = append(unkeyed, item)
		}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return *keyed[i].SortOrder < *keyed[j].SortOrder
	})
	return append(keyed, unkeyed...)
}

func normalizeModifiers(mods []domain.Modifier) []domain.Modifier {
	if len(mods) == 0 {
		return nil
	}
	out := make([]domain.Modifier, 0, len(mods))
	for _, m := range mods {
		target, ok := domain.NormalizeTarget(string(m.Target))
		if !ok {
			continue
		}
		m.Target = target
		out = append(out, m)
	}
	return out
}

// foldLegacyModifiers normalizes an armor/weapon modifier array, folding the
// legacy singular ability/modifier pair in only when the array is empty so a
// second pass cannot double it.
func foldLegacyModifiers(mods []domain.Modifier, ability string, value json.RawMessage) []domain.Modifier {
	if len(mods) > 0 {
		return normalizeModifiers(mods)
	}
	if ability == "" || len(value) == 0 {
		return nil
	}
	target, ok := domain.NormalizeTarget(ability)
	if !ok {
		return nil
	}
	var raw any
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil
	}
	v, ok := domain.CoerceInt(raw)
	if !ok {
		return nil
	}
	return []domain.Modifier{{Target: target, Value: v}}
}

// ParseLegacyLine converts one free-text inventory line into a canonical
// item. Lines that do not parse as a JSON object with a non-empty name
// degrade to a text item carrying the raw line; this never fails.
func ParseLegacyLine(line string) domain.Item {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "{") {
		return textItem(line)
	}

	var raw struct {
		Name        string            `json:"name"`
		Category    string            `json:"category"`
		Quantity    any               `json:"quantity"`
		Description string            `json:"description"`
		Ability     string            `json:"ability"`
		Modifier    any               `json:"modifier"`
		Modifiers   []domain.Modifier `json:"modifiers"`
	}
	if err := json.Unmarshal([]byte(line), &raw); err != nil || strings.TrimSpace(raw.Name) == "" {
		return textItem(line)
	}

	item := domain.Item{
		Name:        strings.TrimSpace(raw.Name),
		Category:    domain.ItemCategory(raw.Category),
		Description: raw.Description,
		Kind:        domain.ItemKindJSON,
	}
	if q, ok := domain.CoerceInt(raw.Quantity); ok {
		item.Quantity = q
	}
	if raw.Ability != "" {
		if target, ok := domain.NormalizeTarget(raw.Ability); ok {
			if v, ok := domain.CoerceInt(raw.Modifier); ok {
				item.Modifiers = append(item.Modifiers, domain.Modifier{Target: target, Value: v})
			}
		}
	}
	item.Modifiers = append(item.Modifiers, normalizeModifiers(raw.Modifiers)...)
	return item
}

func textItem(line string) domain.Item {
	return domain.Item{Name: line, Kind: domain.ItemKindText}
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
