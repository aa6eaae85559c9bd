package domain

// FightMode selects how the pending opponent is fought.
type FightMode int

const (
	// FightBarehanded takes the monster's full power as damage.
	FightBarehanded FightMode = iota
	// FightWithWeapon subtracts the equipped weapon's strength from the damage.
	FightWithWeapon
)

func (m FightMode) String() string {
	if m == FightWithWeapon {
		return "weapon"
	}
	return "barehanded"
}

// ParseFightMode converts "weapon"/"barehanded" into a FightMode.
func ParseFightMode(s string) (FightMode, bool) {
	switch s {
	case "weapon":
		return FightWithWeapon, true
	case "barehanded":
		return FightBarehanded, true
	default:
		return FightBarehanded, false
	}
}

// Kill records the last monster a weapon defeated.
type Kill struct {
	Power int
	Suit  Suit
}

// Weapon is an equipped diamond. A nil Kill means the weapon is fresh and may
// face any monster; once used it may only face monsters strictly weaker than
// its last kill.
type Weapon struct {
	Strength int
	Kill     *Kill
}

// NewWeapon equips a fresh weapon of the given strength.
func NewWeapon(strength int) *Weapon {
	return &Weapon{Strength: strength}
}

// Fresh reports whether the weapon has not defeated anything yet.
func (w *Weapon) Fresh() bool {
	return w.Kill == nil
}

// Last returns the power of the last monster defeated, or 0 for a fresh weapon.
func (w *Weapon) Last() int {
	if w.Kill == nil {
		return 0
	}
	return w.Kill.Power
}

// CanDefeat reports whether the weapon may be used against monster.
func (w *Weapon) CanDefeat(monster Card) bool {
	if w == nil {
		return false
	}
	if w.Kill == nil {
		return true
	}
	return Power(monster) < w.Kill.Power
}

// Strike records monster as the new kill and returns the damage left after the block.
func (w *Weapon) Strike(monster Card) int {
	power := Power(monster)
	w.Kill = &Kill{Power: power, Suit: monster.Suit}
	return max(power-w.Strength, 0)
}

func (w *Weapon) clone() *Weapon {
	if w == nil {
		return nil
	}
	out := &Weapon{Strength: w.Strength}
	if w.Kill != nil {
		k := *w.Kill
		out.Kill = &k
	}
	return out
}
