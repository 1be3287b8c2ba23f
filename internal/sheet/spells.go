package sheet

import "github.com/mparker/character-vault/internal/domain"

// PreparedInfo describes a class's daily spell preparation capacity.
type PreparedInfo struct {
	Total    int           `json:"total"`
	Ability  domain.Target `json:"ability"`
	APIClass string        `json:"apiClass"`
}

// PreparedSpellInfo computes how many spells a character may keep prepared.
// Returns nil for classes without a preparation rule or for levels below 1.
// The "custom" class reads its casting ability from the details record,
// defaulting to INT.
func PreparedSpellInfo(class string, totals AbilityScores, level int, d domain.Details) *PreparedInfo {
	if level < 1 {
		return nil
	}

	apiClass := domain.NormalizeClass(class)

	var ability domain.Target
	var base int
	switch apiClass {
	case "cleric", "druid":
		ability, base = domain.TargetWIS, level
	case "wizard":
		ability, base = domain.TargetINT, level
	case "paladin":
		ability, base = domain.TargetCHA, level/2
	case "artificer":
		ability, base = domain.TargetINT, level/2
	case "custom":
		ability = domain.TargetINT
		if t, ok := domain.NormalizeTarget(d.CustomCastingAbility); ok {
			ability = t
		}
		base = level
	default:
		return nil
	}

	total := base + AbilityModifier(totals.ByTarget(ability))
	if total < 1 {
		total = 1
	}
	return &PreparedInfo{Total: total, Ability: ability, APIClass: apiClass}
}

// CountPreparedSpells counts learned spells across every level except 0:
// cantrips never count against the prepared limit.
func CountPreparedSpells(spells domain.SpellBook) int {
	count := 0
	for key, list := range spells {
		if key == domain.SpellLevelKey(0) {
			continue
		}
		count += len(list)
	}
	return count
}
