package bot

import (
	"scoundrel/internal/domain"
)

// Candidate is one legal action with its heuristic score.
type Candidate struct {
	Action domain.Action
	Score  float64
}

// SelectionContext holds the state for the action selection pipeline.
type SelectionContext struct {
	Snapshot   domain.Snapshot
	Tuning     Tuning
	Candidates []Candidate
}

// SelectionRule adjusts candidate scores or prunes candidates.
type SelectionRule interface {
	Name() string
	Apply(ctx *SelectionContext)
}

// legalCandidates lists every action the rules engine would accept right now.
func legalCandidates(snap domain.Snapshot) []Candidate {
	if snap.Over {
		return nil
	}
	if snap.Opponent != nil {
		out := []Candidate{{Action: domain.Fight(domain.FightBarehanded)}}
		if snap.WeaponUsable {
			out = append(out, Candidate{Action: domain.Fight(domain.FightWithWeapon)})
		}
		return out
	}
	if len(snap.Hand) == 0 {
		if len(snap.Deck) == 0 {
			return nil
		}
		return []Candidate{{Action: domain.Action{Kind: domain.ActionDrawInitial}}}
	}

	out := make([]Candidate, 0, len(snap.Hand)+1)
	for _, c := range snap.Hand {
		out = append(out, Candidate{Action: domain.PlayCard(c)})
	}
	if !snap.Skipped {
		out = append(out, Candidate{Action: domain.Action{Kind: domain.ActionSkip}})
	}
	return out
}

// selectAction runs the rules and returns the best scoring candidate; ties keep hand order.
func selectAction(snap domain.Snapshot, tuning Tuning, rules []SelectionRule) (domain.Action, error) {
	ctx := &SelectionContext{
		Snapshot:   snap,
		Tuning:     tuning,
		Candidates: legalCandidates(snap),
	}
	for _, rule := range rules {
		rule.Apply(ctx)
	}
	if len(ctx.Candidates) == 0 {
		return domain.Action{}, ErrNoMove
	}

	best := 0
	for i := 1; i < len(ctx.Candidates); i++ {
		if ctx.Candidates[i].Score > ctx.Candidates[best].Score {
			best = i
		}
	}
	return ctx.Candidates[best].Action, nil
}

// weaponReaches reports whether the current weapon may strike a monster of the given power.
func weaponReaches(w *domain.WeaponView, power int) bool {
	return w != nil && (w.Last == 0 || power < w.Last)
}

// expectedDamage is the damage a monster deals when fought the best available way.
func expectedDamage(snap domain.Snapshot, monster domain.Card) int {
	power := domain.Power(monster)
	if weaponReaches(snap.Weapon, power) {
		return max(power-snap.Weapon.Strength, 0)
	}
	return power
}

// effectiveStrength is how much a weapon can still absorb from its next target.
func effectiveStrength(w *domain.WeaponView) int {
	if w == nil {
		return 0
	}
	if w.Last == 0 {
		return w.Strength
	}
	// Only monsters below Last remain reachable.
	return min(w.Strength, w.Last-1)
}

// roomThreat sums the expected damage of every monster in the hand.
func roomThreat(snap domain.Snapshot) int {
	total := 0
	for _, c := range snap.Hand {
		if c.IsMonster() {
			total += expectedDamage(snap, c)
		}
	}
	return total
}

// DamageRule scores fights and monster plays by the life they cost.
type DamageRule struct{}

func (r *DamageRule) Name() string { return "Damage" }

func (r *DamageRule) Apply(ctx *SelectionContext) {
	snap := ctx.Snapshot
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		damage := -1
		switch c.Action.Kind {
		case domain.ActionFight:
			power := domain.Power(*snap.Opponent)
			damage = power
			if c.Action.Mode == domain.FightWithWeapon {
				damage = max(power-snap.Weapon.Strength, 0)
			}
		case domain.ActionPlayCard:
			if c.Action.Card.IsMonster() {
				damage = expectedDamage(snap, c.Action.Card)
			}
		}
		if damage < 0 {
			continue
		}
		c.Score -= float64(damage)
		if damage >= snap.Life {
			c.Score -= ctx.Tuning.LethalPenalty
		}
	}
}

// PotionRule values potions by the life they actually restore.
type PotionRule struct{}

func (r *PotionRule) Name() string { return "Potion" }

func (r *PotionRule) Apply(ctx *SelectionContext) {
	snap := ctx.Snapshot
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.Action.Kind != domain.ActionPlayCard || c.Action.Card.Kind() != domain.KindPotion {
			continue
		}
		if snap.Healed {
			c.Score -= ctx.Tuning.WastedPotionPenalty
			continue
		}
		heal := min(domain.Power(c.Action.Card), snap.MaxLife-snap.Life)
		c.Score += float64(heal) * ctx.Tuning.HealWeight
	}
}

// WeaponRule values weapon cards by how much they improve on the current weapon.
type WeaponRule struct{}

func (r *WeaponRule) Name() string { return "Weapon" }

func (r *WeaponRule) Apply(ctx *SelectionContext) {
	current := effectiveStrength(ctx.Snapshot.Weapon)
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.Action.Kind != domain.ActionPlayCard || c.Action.Card.Kind() != domain.KindWeapon {
			continue
		}
		c.Score += float64(domain.Power(c.Action.Card)-current) * ctx.Tuning.WeaponWeight
	}
}

// NoSkipRule removes the skip option entirely.
type NoSkipRule struct{}

func (r *NoSkipRule) Name() string { return "NoSkip" }

func (r *NoSkipRule) Apply(ctx *SelectionContext) {
	kept := ctx.Candidates[:0]
	for _, c := range ctx.Candidates {
		if c.Action.Kind != domain.ActionSkip {
			kept = append(kept, c)
		}
	}
	ctx.Candidates = kept
}

// FleeRule makes skipping attractive only when the room threatens too much of the remaining life.
type FleeRule struct{}

func (r *FleeRule) Name() string { return "Flee" }

func (r *FleeRule) Apply(ctx *SelectionContext) {
	snap := ctx.Snapshot
	threat := roomThreat(snap)
	dangerous := float64(threat) >= float64(snap.Life)*ctx.Tuning.SkipLifeRatio
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.Action.Kind != domain.ActionSkip {
			continue
		}
		if dangerous {
			c.Score += ctx.Tuning.LethalPenalty / 2
		} else {
			c.Score -= ctx.Tuning.LethalPenalty
		}
	}
}

// PreserveWeaponRule keeps a fresh or high-reach weapon for monsters that matter.
type PreserveWeaponRule struct{}

func (r *PreserveWeaponRule) Name() string { return "PreserveWeapon" }

func (r *PreserveWeaponRule) Apply(ctx *SelectionContext) {
	snap := ctx.Snapshot
	if snap.Opponent == nil {
		return
	}
	power := domain.Power(*snap.Opponent)
	if power > ctx.Tuning.SmallMonsterPower || power >= snap.Life {
		return
	}
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.Action.Kind == domain.ActionFight && c.Action.Mode == domain.FightWithWeapon {
			// Striking a small monster caps the weapon at that power.
			c.Score -= float64(power)
		}
	}
}

// AlwaysWeaponRule forces the weapon whenever it can be used.
type AlwaysWeaponRule struct{}

func (r *AlwaysWeaponRule) Name() string { return "AlwaysWeapon" }

func (r *AlwaysWeaponRule) Apply(ctx *SelectionContext) {
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.Action.Kind == domain.ActionFight && c.Action.Mode == domain.FightWithWeapon {
			c.Score += ctx.Tuning.LethalPenalty
		}
	}
}
