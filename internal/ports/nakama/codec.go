package nakama

import (
	"fmt"

	"scoundrel/internal/app"
	"scoundrel/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Match messages travel as google.protobuf.Struct so clients can decode them with the
// well-known types shipped by every protobuf runtime.

func encodeStruct(fields map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return proto.Marshal(s)
}

func decodeStruct(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return map[string]interface{}{}, nil
	}
	s := &structpb.Struct{}
	if err := proto.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode struct: %w", err)
	}
	return s.AsMap(), nil
}

func encodeLabel(fields map[string]interface{}) (string, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func cardToMap(c domain.Card) map[string]interface{} {
	return map[string]interface{}{
		"suit":  string(c.Suit),
		"rank":  c.Rank.String(),
		"power": domain.Power(c),
		"kind":  c.Kind().String(),
	}
}

func cardsToList(cards []domain.Card) []interface{} {
	out := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToMap(c))
	}
	return out
}

func optionalCard(c *domain.Card) interface{} {
	if c == nil {
		return nil
	}
	return cardToMap(*c)
}

// snapshotToMap renders the player's view; the deck order stays on the server.
func snapshotToMap(runID string, snap domain.Snapshot) map[string]interface{} {
	var weapon interface{}
	if snap.Weapon != nil {
		w := map[string]interface{}{
			"strength": snap.Weapon.Strength,
			"last":     snap.Weapon.Last,
		}
		if snap.Weapon.LastSuit != "" {
			w["last_suit"] = string(snap.Weapon.LastSuit)
		}
		weapon = w
	}

	return map[string]interface{}{
		"run_id":        runID,
		"phase":         string(snap.Phase),
		"deck_count":    len(snap.Deck),
		"discard_count": len(snap.Discard),
		"hand":          cardsToList(snap.Hand),
		"life":          snap.Life,
		"max_life":      snap.MaxLife,
		"weapon":        weapon,
		"opponent":      optionalCard(snap.Opponent),
		"weapon_usable": snap.WeaponUsable,
		"skipped":       snap.Skipped,
		"healed":        snap.Healed,
		"score":         snap.Score,
		"over":          snap.Over,
	}
}

func eventToMap(ev app.Event) (map[string]interface{}, error) {
	out := map[string]interface{}{"kind": string(ev.Kind)}

	switch p := ev.Payload.(type) {
	case app.RunStartedPayload:
		out["run_id"] = p.RunID
		out["hand"] = cardsToList(p.Hand)
	case app.CardsDrawnPayload:
		out["cards"] = cardsToList(p.Cards)
		out["deck_count"] = p.DeckCount
	case app.OpponentRevealedPayload:
		out["opponent"] = cardToMap(p.Opponent)
		out["weapon_usable"] = p.WeaponUsable
	case app.FightResolvedPayload:
		out["opponent"] = cardToMap(p.Opponent)
		out["mode"] = p.Mode.String()
		out["damage"] = p.Damage
		out["life"] = p.Life
		out["score"] = p.Score
	case app.PotionUsedPayload:
		out["potion"] = cardToMap(p.Potion)
		out["healed"] = p.Healed
		out["life"] = p.Life
	case app.WeaponEquippedPayload:
		out["weapon"] = cardToMap(p.Weapon)
		out["strength"] = p.Strength
	case app.RoomSkippedPayload:
		out["hand"] = cardsToList(p.Hand)
	case app.RunEndedPayload:
		out["run_id"] = p.RunID
		out["score"] = p.Score
		out["life"] = p.Life
		out["cleared"] = p.Cleared
	case nil:
	default:
		return nil, fmt.Errorf("unknown payload %T for event %s", ev.Payload, ev.Kind)
	}
	return out, nil
}

// actionFromMessage decodes a client op code and body into a domain action.
func actionFromMessage(opCode int64, data []byte) (domain.Action, error) {
	switch opCode {
	case OpDrawInitial:
		return domain.Action{Kind: domain.ActionDrawInitial}, nil
	case OpCancelFight:
		return domain.Action{Kind: domain.ActionCancelFight}, nil
	case OpSkip:
		return domain.Action{Kind: domain.ActionSkip}, nil
	case OpRestart:
		return domain.Action{Kind: domain.ActionRestart}, nil
	case OpPlayCard:
		body, err := decodeStruct(data)
		if err != nil {
			return domain.Action{}, err
		}
		suit, _ := body["suit"].(string)
		rank, _ := body["rank"].(string)
		card, err := domain.ParseCard(suit, rank)
		if err != nil {
			return domain.Action{}, err
		}
		return domain.PlayCard(card), nil
	case OpFight:
		body, err := decodeStruct(data)
		if err != nil {
			return domain.Action{}, err
		}
		modeName, _ := body["mode"].(string)
		mode, ok := domain.ParseFightMode(modeName)
		if !ok {
			return domain.Action{}, fmt.Errorf("%w: unknown fight mode %q", domain.ErrInvalidAction, modeName)
		}
		return domain.Fight(mode), nil
	default:
		return domain.Action{}, fmt.Errorf("%w: op code %d", domain.ErrUnknownAction, opCode)
	}
}
