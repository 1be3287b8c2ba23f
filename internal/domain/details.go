package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Details is the free-structured extension record attached to a Character.
// It is stored as a single jsonb column and always read and rewritten
// wholesale; the sheet package normalizes its legacy fields into the
// canonical Item/Modifier model.
type Details struct {
	Items []Item `json:"items,omitempty"`

	// Legacy equipment shapes from records written before the canonical item
	// model existed. Normalization folds them into canonical modifiers but
	// the fields themselves are kept so older records stay readable.
	Armors         []LegacyArmor `json:"armors,omitempty"`
	WeaponEquipped *LegacyWeapon `json:"weaponEquipped,omitempty"`
	Inventory      string        `json:"inventory,omitempty"`
	Equipment      string        `json:"equipment,omitempty"`
	WeaponsExtra   string        `json:"weaponsExtra,omitempty"`

	Spells               SpellBook            `json:"spells,omitempty"`
	SpellDetails         map[string]SpellMeta `json:"spellDetails,omitempty"`
	CustomCastingAbility string               `json:"customCastingAbility,omitempty"`

	// Optional HP overrides for records that never set the character columns.
	MaxHP     *int `json:"maxHp,omitempty"`
	CurrentHP *int `json:"currentHp,omitempty"`

	// Narrative fields, opaque to every calculation.
	Background  string `json:"background,omitempty"`
	Alignment   string `json:"alignment,omitempty"`
	Personality string `json:"personality,omitempty"`
	Ideals      string `json:"ideals,omitempty"`
	Bonds       string `json:"bonds,omitempty"`
	Flaws       string `json:"flaws,omitempty"`
	Appearance  string `json:"appearance,omitempty"`
	Backstory   string `json:"backstory,omitempty"`
	Allies      string `json:"allies,omitempty"`
	Treasure    string `json:"treasure,omitempty"`

	CustomSpells         []CustomEntry `json:"customSpells,omitempty"`
	CustomCantrips       []CustomEntry `json:"customCantrips,omitempty"`
	CustomTraits         []CustomEntry `json:"customTraits,omitempty"`
	CustomClassAbilities []CustomEntry `json:"customClassAbilities,omitempty"`
	CustomSubclasses     []CustomEntry `json:"customSubclasses,omitempty"`

	CompanionID      *uuid.UUID `json:"companion,omitempty"`
	CompanionOwnerID *uuid.UUID `json:"companionOwnerId,omitempty"`
}

type ItemKind string

const (
	ItemKindText ItemKind = "text"
	ItemKindJSON ItemKind = "json"
)

type ItemCategory string

const (
	CategoryWeapon     ItemCategory = "weapon"
	CategoryArmor      ItemCategory = "armor"
	CategoryAccessory  ItemCategory = "accessory"
	CategoryConsumable ItemCategory = "consumable"
	CategoryTool       ItemCategory = "tool"
	CategoryMisc       ItemCategory = "misc"
)

// Item is the canonical inventory/equipment entity. Ordering is carried by
// SortOrder, not array position, so reordering survives serialization; a nil
// SortOrder marks an item that has never been through a save.
type Item struct {
	ID             string           `json:"id,omitempty"`
	Name           string           `json:"name"`
	Category       ItemCategory     `json:"category,omitempty"`
	Quantity       int              `json:"quantity,omitempty"`
	Weight         float64          `json:"weight,omitempty"`
	Value          string           `json:"value,omitempty"`
	Equipped       bool             `json:"equipped,omitempty"`
	Rarity         string           `json:"rarity,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Attuned        bool             `json:"attuned,omitempty"`
	AttunementText string           `json:"attunementText,omitempty"`
	Description    string           `json:"description,omitempty"`
	SortOrder      *int             `json:"sortOrder,omitempty"`
	Kind           ItemKind         `json:"kind,omitempty"`
	Modifiers      []Modifier       `json:"modifiers,omitempty"`
	Attachments    []ItemAttachment `json:"attachments,omitempty"`
}

// Modifier is a single passive bonus an item, armor or weapon grants.
// Target is always a canonical enum key after normalization.
type Modifier struct {
	Target Target `json:"target"`
	Value  int    `json:"value"`
	Note   string `json:"note,omitempty"`
}

// UnmarshalJSON is deliberately lenient: legacy records store values as
// numbers or numeric strings, and an unparseable entry must degrade to a
// blank modifier (dropped during normalization) rather than abort the whole
// Details decode.
func (m *Modifier) UnmarshalJSON(data []byte) error {
	var raw struct {
		Target string `json:"target"`
		Value  any    `json:"value"`
		Note   string `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = Modifier{}
		return nil
	}
	v, ok := CoerceInt(raw.Value)
	if !ok {
		*m = Modifier{}
		return nil
	}
	*m = Modifier{Target: Target(raw.Target), Value: v, Note: raw.Note}
	return nil
}

// CoerceInt converts the value shapes found in legacy records (JSON numbers,
// numeric strings) to an int. Anything else reports false.
func CoerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// ItemAttachment is an action, ability, spell or trait riding on an item.
// It plays no part in aggregation but must survive normalization intact.
type ItemAttachment struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"` // action, ability, spell, trait
	CastingTime  string `json:"castingTime,omitempty"`
	Range        string `json:"range,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Components   string `json:"components,omitempty"`
	SaveAbility  string `json:"saveAbility,omitempty"`
	SaveDC       int    `json:"saveDc,omitempty"`
	DamageDice   string `json:"damageDice,omitempty"`
	DamageType   string `json:"damageType,omitempty"`
	DamageScale  string `json:"damageScale,omitempty"`
	ResourceCost int    `json:"resourceCost,omitempty"`
	Description  string `json:"description,omitempty"`
}

// LegacyArmor predates multi-modifier items: older records carry a single
// ability/modifier pair, newer ones a modifiers array. Normalization folds
// the singular pair into Modifiers when the array is empty.
type LegacyArmor struct {
	Name     string          `json:"name"`
	Ability  string          `json:"ability,omitempty"`
	Modifier json.RawMessage `json:"modifier,omitempty"`
	Equipped bool            `json:"equipped,omitempty"`

	Modifiers []Modifier `json:"modifiers,omitempty"`
}

type LegacyWeapon struct {
	Name       string          `json:"name"`
	Damage     string          `json:"damage,omitempty"`
	DamageType string          `json:"damageType,omitempty"`
	Ability    string          `json:"ability,omitempty"`
	Modifier   json.RawMessage `json:"modifier,omitempty"`

	Modifiers []Modifier `json:"modifiers,omitempty"`
}

// CustomEntry is a user-authored rules fragment (spell, cantrip, trait,
// class ability, subclass).
type CustomEntry struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Level       int    `json:"level,omitempty"`
	School      string `json:"school,omitempty"`
	Description string `json:"description,omitempty"`
}
