package sheet

import "github.com/mparker/character-vault/internal/domain"

const (
	defaultArmorClass = 10
	defaultSpeed      = 30
)

// AbilityScores holds one value per ability, either base or total.
type AbilityScores struct {
	STR int `json:"str"`
	DEX int `json:"dex"`
	CON int `json:"con"`
	INT int `json:"int"`
	WIS int `json:"wis"`
	CHA int `json:"cha"`
}

// ByTarget returns the score for an ability target; zero otherwise.
func (a AbilityScores) ByTarget(t domain.Target) int {
	switch t {
	case domain.TargetSTR:
		return a.STR
	case domain.TargetDEX:
		return a.DEX
	case domain.TargetCON:
		return a.CON
	case domain.TargetINT:
		return a.INT
	case domain.TargetWIS:
		return a.WIS
	case domain.TargetCHA:
		return a.CHA
	}
	return 0
}

// DerivedStats is the full set of view-ready totals for a sheet.
type DerivedStats struct {
	Abilities        AbilityScores `json:"abilities"`
	AbilityModifiers AbilityScores `json:"abilityModifiers"`

	ArmorClass        int `json:"armorClass"`
	Speed             int `json:"speed"`
	MaxHP             int `json:"maxHp"`
	CurrentHP         int `json:"currentHp"`
	ProficiencyBonus  int `json:"proficiencyBonus"`
	Initiative        int `json:"initiative"`
	PassivePerception int `json:"passivePerception"`
}

// AbilityModifier computes the modifier for an ability score, flooring
// toward negative infinity: score 9 is −1, not 0.
func AbilityModifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus returns the base proficiency bonus for a level, never
// below 2.
func ProficiencyBonus(level int) int {
	bonus := 2 + floorDiv(level-1, 4)
	if bonus < 2 {
		return 2
	}
	return bonus
}

// ComputeDerived combines base character fields with aggregated item
// modifiers into the full derived-stat set. It expects normalized Details
// and never clamps current HP; clamping belongs to the save path.
func ComputeDerived(c domain.Character, d domain.Details) DerivedStats {
	totals := AbilityScores{
		STR: c.Strength + AggregateTarget(d, domain.TargetSTR).Total,
		DEX: c.Dexterity + AggregateTarget(d, domain.TargetDEX).Total,
		CON: c.Constitution + AggregateTarget(d, domain.TargetCON).Total,
		INT: c.Intelligence + AggregateTarget(d, domain.TargetINT).Total,
		WIS: c.Wisdom + AggregateTarget(d, domain.TargetWIS).Total,
		CHA: c.Charisma + AggregateTarget(d, domain.TargetCHA).Total,
	}

	stats := DerivedStats{
		Abilities: totals,
		AbilityModifiers: AbilityScores{
			STR: AbilityModifier(totals.STR),
			DEX: AbilityModifier(totals.DEX),
			CON: AbilityModifier(totals.CON),
			INT: AbilityModifier(totals.INT),
			WIS: AbilityModifier(totals.WIS),
			CHA: AbilityModifier(totals.CHA),
		},
	}

	ac := c.ArmorClass
	if ac == 0 {
		ac = defaultArmorClass
	}
	stats.ArmorClass = ac + AggregateTarget(d, domain.TargetAC).Total

	speed := c.Speed
	if speed == 0 {
		speed = defaultSpeed
	}
	stats.Speed = speed + AggregateTarget(d, domain.TargetSpeed).Total

	maxHP := c.MaxHP
	if maxHP == 0 && d.MaxHP != nil {
		maxHP = *d.MaxHP
	}
	stats.MaxHP = maxHP + AggregateTarget(d, domain.TargetHPMax).Total

	switch {
	case c.CurrentHP != nil:
		stats.CurrentHP = *c.CurrentHP
	case d.CurrentHP != nil:
		stats.CurrentHP = *d.CurrentHP
	default:
		stats.CurrentHP = stats.MaxHP
	}
	stats.CurrentHP += AggregateTarget(d, domain.TargetHPCurrent).Total

	stats.ProficiencyBonus = ProficiencyBonus(c.Level) + AggregateTarget(d, domain.TargetProficiency).Total
	stats.Initiative = AbilityModifier(totals.DEX) + AggregateTarget(d, domain.TargetInitiative).Total
	stats.PassivePerception = 10 + AbilityModifier(totals.WIS) + AggregateTarget(d, domain.TargetPassivePerception).Total

	return stats
}

// hit dice per class API key; everything unknown rolls a d8.
var classHitDie = map[string]int{
	"barbarian": 12,
	"fighter":   10,
	"paladin":   10,
	"ranger":    10,
	"sorcerer":  6,
	"wizard":    6,
}

// MaxHPForLevel computes a fresh character's hit points from class and
// level: hitDie × level + CON modifier. This is the creation-time seed, not
// the stored max_hp override ComputeDerived reads.
func MaxHPForLevel(class string, level, conModifier int) int {
	die, ok := classHitDie[domain.NormalizeClass(class)]
	if !ok {
		die = 8
	}
	if level < 1 {
		level = 1
	}
	return die*level + conModifier
}

// floorDiv divides rounding toward negative infinity. Go's native division
// truncates toward zero, which is wrong for scores below 10.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
