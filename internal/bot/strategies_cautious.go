package bot

import "scoundrel/internal/domain"

// CautiousBot drinks first, flees dangerous rooms and saves its weapon for big monsters.
type CautiousBot struct {
	Tuning Tuning
}

func (b *CautiousBot) NextAction(snap domain.Snapshot) (domain.Action, error) {
	return selectAction(snap, b.Tuning, []SelectionRule{
		&DamageRule{},
		&PotionRule{},
		&WeaponRule{},
		&FleeRule{},
		&PreserveWeaponRule{},
	})
}
