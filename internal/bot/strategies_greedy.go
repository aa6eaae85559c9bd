package bot

import "scoundrel/internal/domain"

// GreedyBot never flees, takes the cheapest monster first and always swings its weapon.
type GreedyBot struct {
	Tuning Tuning
}

func (b *GreedyBot) NextAction(snap domain.Snapshot) (domain.Action, error) {
	return selectAction(snap, b.Tuning, []SelectionRule{
		&NoSkipRule{},
		&DamageRule{},
		&PotionRule{},
		&WeaponRule{},
		&AlwaysWeaponRule{},
	})
}
