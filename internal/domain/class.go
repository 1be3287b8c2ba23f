package domain

// classAliases maps folded localized class names to the canonical lowercase
// API key. English names fold to themselves and need no entry.
var classAliases = map[string]string{
	"barbaro":       "barbarian",
	"bardo":         "bard",
	"clerigo":       "cleric",
	"druida":        "druid",
	"guerreiro":     "fighter",
	"guerrero":      "fighter",
	"monge":         "monk",
	"monje":         "monk",
	"paladino":      "paladin",
	"patrulheiro":   "ranger",
	"explorador":    "ranger",
	"ladino":        "rogue",
	"picaro":        "rogue",
	"feiticeiro":    "sorcerer",
	"hechicero":     "sorcerer",
	"bruxo":         "warlock",
	"brujo":         "warlock",
	"mago":          "wizard",
	"artifice":      "artificer",
	"customizado":   "custom",
	"customizada":   "custom",
	"personalizado": "custom",
	"personalizada": "custom",
}

// NormalizeClass maps a raw class string (possibly localized, accented or
// mixed case) to a canonical lowercase API key. Unknown classes pass through
// folded, so "Gunslinger" becomes "gunslinger" and is simply treated as a
// class without a preparation rule.
func NormalizeClass(raw string) string {
	key := foldKey(raw)
	if canonical, ok := classAliases[key]; ok {
		return canonical
	}
	return key
}
