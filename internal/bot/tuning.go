package bot

// Tuning weighs the heuristics shared by the autoplay strategies.
type Tuning struct {
	// HealWeight scales the life actually restored by a potion.
	HealWeight float64
	// WastedPotionPenalty applies to a potion drunk after the room's heal was used.
	WastedPotionPenalty float64
	// WeaponWeight scales the gain in effective weapon strength.
	WeaponWeight float64
	// SmallMonsterPower is the largest monster the cautious bot fights barehanded to keep its weapon fresh.
	SmallMonsterPower int
	// SkipLifeRatio is the share of current life a room must threaten before the cautious bot flees.
	SkipLifeRatio float64
	// LethalPenalty applies to actions expected to end the run by death.
	LethalPenalty float64
}

var DefaultTuning = Tuning{
	HealWeight:          1.0,
	WastedPotionPenalty: 2.0,
	WeaponWeight:        0.8,
	SmallMonsterPower:   4,
	SkipLifeRatio:       0.75,
	LethalPenalty:       1000.0,
}
