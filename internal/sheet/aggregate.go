package sheet

import "github.com/mparker/character-vault/internal/domain"

// Source records one contribution to an aggregated total, in scan order.
type Source struct {
	Source string `json:"source"`
	Value  int    `json:"value"`
}

// Aggregate is the total bonus for a single target plus the ordered list of
// contributors. Sources is never nil so it serializes as [].
type Aggregate struct {
	Total   int      `json:"total"`
	Sources []Source `json:"sources"`
}

// AggregateTarget walks every modifier in a normalized Details record and
// sums the ones matching target. Scan order is fixed: items in sortOrder,
// then legacy armors in array order, then the legacy equipped weapon — the
// same snapshot always yields the same sources in the same order.
//
// The total is a plain integer sum: multiple items stack freely. Callers
// needing no-stacking semantics filter Sources themselves.
func AggregateTarget(d domain.Details, target domain.Target) Aggregate {
	agg := Aggregate{Sources: []Source{}}

	add := func(name string, mods []domain.Modifier) {
		for _, m := range mods {
			normalized, ok := domain.NormalizeTarget(string(m.Target))
			if !ok || normalized != target {
				continue
			}
			agg.Total += m.Value
			agg.Sources = append(agg.Sources, Source{Source: name, Value: m.Value})
		}
	}

	for _, item := range d.Items {
		add(item.Name, item.Modifiers)
	}
	for _, armor := range d.Armors {
		add(armor.Name, armor.Modifiers)
	}
	if d.WeaponEquipped != nil {
		add(d.WeaponEquipped.Name, d.WeaponEquipped.Modifiers)
	}

	return agg
}
