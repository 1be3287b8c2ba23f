package domain

// Target identifies what a Modifier affects. The set is closed: every raw
// label read from storage is mapped through NormalizeTarget before any
// aggregation or comparison.
type Target string

const (
	TargetSTR Target = "STR"
	TargetDEX Target = "DEX"
	TargetCON Target = "CON"
	TargetINT Target = "INT"
	TargetWIS Target = "WIS"
	TargetCHA Target = "CHA"

	TargetAC                Target = "AC"
	TargetHPMax             Target = "HP_MAX"
	TargetHPCurrent         Target = "HP_CURRENT"
	TargetSpeed             Target = "SPEED"
	TargetInitiative        Target = "INITIATIVE"
	TargetProficiency       Target = "PROFICIENCY"
	TargetPassivePerception Target = "PASSIVE_PERCEPTION"
	TargetSpellAttack       Target = "SPELL_ATTACK"
	TargetSpellDC           Target = "SPELL_DC"
	TargetAttackBonus       Target = "ATTACK_BONUS"
	TargetDamageBonus       Target = "DAMAGE_BONUS"

	TargetSaveSTR Target = "SAVE_STR"
	TargetSaveDEX Target = "SAVE_DEX"
	TargetSaveCON Target = "SAVE_CON"
	TargetSaveINT Target = "SAVE_INT"
	TargetSaveWIS Target = "SAVE_WIS"
	TargetSaveCHA Target = "SAVE_CHA"

	TargetSkillAcrobatics     Target = "SKILL_ACROBATICS"
	TargetSkillAnimalHandling Target = "SKILL_ANIMAL_HANDLING"
	TargetSkillArcana         Target = "SKILL_ARCANA"
	TargetSkillAthletics      Target = "SKILL_ATHLETICS"
	TargetSkillDeception      Target = "SKILL_DECEPTION"
	TargetSkillHistory        Target = "SKILL_HISTORY"
	TargetSkillInsight        Target = "SKILL_INSIGHT"
	TargetSkillIntimidation   Target = "SKILL_INTIMIDATION"
	TargetSkillInvestigation  Target = "SKILL_INVESTIGATION"
	TargetSkillMedicine       Target = "SKILL_MEDICINE"
	TargetSkillNature         Target = "SKILL_NATURE"
	TargetSkillPerception     Target = "SKILL_PERCEPTION"
	TargetSkillPerformance    Target = "SKILL_PERFORMANCE"
	TargetSkillPersuasion     Target = "SKILL_PERSUASION"
	TargetSkillReligion       Target = "SKILL_RELIGION"
	TargetSkillSleightOfHand  Target = "SKILL_SLEIGHT_OF_HAND"
	TargetSkillStealth        Target = "SKILL_STEALTH"
	TargetSkillSurvival       Target = "SKILL_SURVIVAL"
)

var abilityTargets = []Target{TargetSTR, TargetDEX, TargetCON, TargetINT, TargetWIS, TargetCHA}

var skillTargets = []Target{
	TargetSkillAcrobatics, TargetSkillAnimalHandling, TargetSkillArcana,
	TargetSkillAthletics, TargetSkillDeception, TargetSkillHistory,
	TargetSkillInsight, TargetSkillIntimidation, TargetSkillInvestigation,
	TargetSkillMedicine, TargetSkillNature, TargetSkillPerception,
	TargetSkillPerformance, TargetSkillPersuasion, TargetSkillReligion,
	TargetSkillSleightOfHand, TargetSkillStealth, TargetSkillSurvival,
}

// targetAliases maps folded labels (see foldKey) to canonical targets. The
// localized entries cover the labels found in legacy records.
var targetAliases = map[string]Target{
	"strength": TargetSTR, "forca": TargetSTR, "fuerza": TargetSTR,
	"dexterity": TargetDEX, "destreza": TargetDEX,
	"constitution": TargetCON, "constituicao": TargetCON, "constitucion": TargetCON,
	"intelligence": TargetINT, "inteligencia": TargetINT,
	"wisdom": TargetWIS, "sabedoria": TargetWIS, "sabiduria": TargetWIS,
	"charisma": TargetCHA, "carisma": TargetCHA,

	"armor class": TargetAC, "ca": TargetAC,
	"classe de armadura": TargetAC, "clase de armadura": TargetAC,
	"hp": TargetHPMax, "max hp": TargetHPMax, "hit points": TargetHPMax,
	"pv": TargetHPMax, "pontos de vida": TargetHPMax,
	"current hp": TargetHPCurrent,
	"speed":      TargetSpeed, "deslocamento": TargetSpeed, "velocidad": TargetSpeed, "velocidade": TargetSpeed,
	"initiative": TargetInitiative, "iniciativa": TargetInitiative,
	"proficiency bonus": TargetProficiency, "proficiencia": TargetProficiency,
	"percepcao passiva": TargetPassivePerception, "percepcion pasiva": TargetPassivePerception,
	"cd de magia": TargetSpellDC,
	"attack":      TargetAttackBonus, "ataque": TargetAttackBonus,
	"damage": TargetDamageBonus, "dano": TargetDamageBonus,
}

func init() {
	// Every canonical key folds to itself.
	for _, t := range allTargets() {
		targetAliases[foldKey(string(t))] = t
	}
	// Saving throws: "str save" / "save str" / localized "salvaguarda de forca".
	abilityWords := map[Target][]string{
		TargetSTR: {"str", "strength", "forca", "fuerza"},
		TargetDEX: {"dex", "dexterity", "destreza"},
		TargetCON: {"con", "constitution", "constituicao", "constitucion"},
		TargetINT: {"int", "intelligence", "inteligencia"},
		TargetWIS: {"wis", "wisdom", "sabedoria", "sabiduria"},
		TargetCHA: {"cha", "charisma", "carisma"},
	}
	for i, ability := range abilityTargets {
		save := []Target{TargetSaveSTR, TargetSaveDEX, TargetSaveCON, TargetSaveINT, TargetSaveWIS, TargetSaveCHA}[i]
		for _, w := range abilityWords[ability] {
			targetAliases[w] = ability
			targetAliases[w+" save"] = save
			targetAliases["save "+w] = save
			targetAliases[w+" saving throw"] = save
			targetAliases["salvaguarda de "+w] = save
		}
	}
	// Skills answer to their bare names as well as the SKILL_ prefix form.
	for _, t := range skillTargets {
		bare := foldKey(string(t[len("SKILL_"):]))
		targetAliases[bare] = t
	}
}

func allTargets() []Target {
	targets := []Target{
		TargetAC, TargetHPMax, TargetHPCurrent, TargetSpeed, TargetInitiative,
		TargetProficiency, TargetPassivePerception, TargetSpellAttack,
		TargetSpellDC, TargetAttackBonus, TargetDamageBonus,
		TargetSaveSTR, TargetSaveDEX, TargetSaveCON, TargetSaveINT,
		TargetSaveWIS, TargetSaveCHA,
	}
	targets = append(targets, abilityTargets...)
	targets = append(targets, skillTargets...)
	return targets
}

// NormalizeTarget maps a raw label (canonical key, legacy abbreviation or
// localized name) to its canonical target. Reports false for anything
// unmappable; such modifiers are dropped, never aggregated by raw string.
func NormalizeTarget(raw string) (Target, bool) {
	t, ok := targetAliases[foldKey(raw)]
	return t, ok
}
