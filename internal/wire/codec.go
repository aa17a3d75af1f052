package wire

import (
	"encoding/json"
	"fmt"

	"github.com/Seednode/cardhub/internal/gract"
)

// clientEnvelope is the union of every field any client frame variant may
// carry. A field's Go type (not just its presence) is enforced by
// json.Unmarshal itself: a string where an int was expected fails decoding
// before the switch on Type ever runs.
type clientEnvelope struct {
	Type string `json:"type"`

	PlayerName *string `json:"player-name,omitempty"`

	ActionType *string `json:"action-type,omitempty"`

	CardID        *int `json:"card-id,omitempty"`
	CollID        *int `json:"coll-id,omitempty"`
	SelectCardID  *int `json:"select-card-id,omitempty"`
	AgainstCardID *int `json:"against-card-id,omitempty"`
	TypeID        *int `json:"type-id,omitempty"`
}

// Decode parses one client-to-server frame. Any malformed frame — invalid
// JSON, an unrecognised type, or a variant missing one of its required
// fields — returns ErrProtocolViolation.
func Decode(raw []byte) (ClientFrame, error) {
	var env clientEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}

	switch env.Type {
	case "intro":
		if env.PlayerName == nil {
			return nil, fmt.Errorf("%w: intro missing player-name", ErrProtocolViolation)
		}
		return Intro{PlayerName: *env.PlayerName}, nil

	case "start-round":
		return StartRound{}, nil

	case "action":
		if env.ActionType == nil {
			return nil, fmt.Errorf("%w: action missing action-type", ErrProtocolViolation)
		}

		action, err := decodeAction(*env.ActionType, env)
		if err != nil {
			return nil, err
		}
		return Action{Action: action}, nil

	default:
		return nil, fmt.Errorf("%w: unknown frame type %q", ErrProtocolViolation, env.Type)
	}
}

func decodeAction(actionType string, env clientEnvelope) (gract.Action, error) {
	switch actionType {
	case "next":
		return gract.NextAction{}, nil

	case "select":
		if env.CardID == nil {
			return nil, fmt.Errorf("%w: select action missing card-id", ErrProtocolViolation)
		}
		return gract.SelectCardAction{CardID: *env.CardID}, nil

	case "select-coll":
		if env.CollID == nil {
			return nil, fmt.Errorf("%w: select-coll action missing coll-id", ErrProtocolViolation)
		}
		return gract.SelectCollectionAction{CollectionID: *env.CollID}, nil

	case "against":
		if env.SelectCardID == nil {
			return nil, fmt.Errorf("%w: against action missing select-card-id", ErrProtocolViolation)
		}
		if env.AgainstCardID == nil {
			return nil, fmt.Errorf("%w: against action missing against-card-id", ErrProtocolViolation)
		}
		return gract.AgainstCardAction{
			SelectCardID:  *env.SelectCardID,
			AgainstCardID: *env.AgainstCardID,
		}, nil

	case "wild":
		if env.CardID == nil {
			return nil, fmt.Errorf("%w: wild action missing card-id", ErrProtocolViolation)
		}
		if env.TypeID == nil {
			return nil, fmt.Errorf("%w: wild action missing type-id", ErrProtocolViolation)
		}
		return gract.WildCardAction{CardID: *env.CardID, TypeID: *env.TypeID}, nil

	default:
		return nil, fmt.Errorf("%w: unknown action-type %q", ErrProtocolViolation, actionType)
	}
}

// Encode renders one server-to-client frame as JSON.
func Encode(frame ServerFrame) ([]byte, error) {
	switch f := frame.(type) {
	case ServerIntro:
		return json.Marshal(map[string]any{
			"type":      "intro",
			"game-id":   f.GameID,
			"player-id": f.PlayerID,
		})

	case GractList:
		return json.Marshal(map[string]any{
			"type":       "gract-list",
			"gract-list": encodeGracts(f.Gracts),
		})

	case EndRound:
		return json.Marshal(map[string]any{
			"type":      "end-round",
			"reason":    f.Reason,
			"standings": encodeStandings(f.Standings),
		})

	case EndGame:
		return json.Marshal(map[string]any{
			"type":      "end-game",
			"reason":    f.Reason,
			"standings": encodeStandings(f.Standings),
		})

	case Error:
		return json.Marshal(map[string]any{
			"type":   "error",
			"reason": f.Reason,
		})

	default:
		return nil, fmt.Errorf("wire: unknown server frame type %T", frame)
	}
}

func encodeStandings(standings []Standing) []map[string]any {
	out := make([]map[string]any, 0, len(standings))
	for _, s := range standings {
		out = append(out, map[string]any{
			"player-id": s.PlayerID,
			"note":      s.Note,
		})
	}
	return out
}

func encodeGracts(gracts []gract.Gract) []map[string]any {
	out := make([]map[string]any, 0, len(gracts))
	for _, g := range gracts {
		out = append(out, encodeGract(g))
	}
	return out
}

func encodeGract(g gract.Gract) map[string]any {
	switch v := g.(type) {
	case gract.ShowType:
		return map[string]any{
			"type":        "show-type",
			"type-id":     v.TypeID,
			"name":        v.Name,
			"description": v.Description,
			"image-url":   v.ImageURL,
		}

	case gract.ShowCollection:
		var anchor any
		if v.AnchorPlayerID != nil {
			anchor = *v.AnchorPlayerID
		}
		return map[string]any{
			"type":             "show-collection",
			"collection-id":    v.CollectionID,
			"anchor-player-id": anchor,
			"display":          string(v.Display),
		}

	case gract.HideCollection:
		return map[string]any{
			"type":          "hide-collection",
			"collection-id": v.CollectionID,
		}

	case gract.ShowCard:
		return map[string]any{
			"type":          "show-card",
			"card-id":       v.CardID,
			"type-id":       v.TypeID,
			"collection-id": v.CollectionID,
		}

	case gract.HideCard:
		return map[string]any{
			"type":    "hide-card",
			"card-id": v.CardID,
		}

	case gract.MoveCard:
		return map[string]any{
			"type":          "move-card",
			"card-id":       v.CardID,
			"collection-id": v.CollectionID,
		}

	case gract.RevealCard:
		return map[string]any{
			"type":        "reveal-card",
			"old-card-id": v.OldCardID,
			"new-card-id": v.NewCardID,
			"new-type-id": v.NewTypeID,
		}

	case gract.ConcealCard:
		return map[string]any{
			"type":        "conceal-card",
			"old-card-id": v.OldCardID,
			"new-card-id": v.NewCardID,
			"new-type-id": v.NewTypeID,
		}

	case gract.PossibleActions:
		return map[string]any{
			"type":             "possible-actions",
			"possible-actions": encodePossibilities(v.Possibilities),
		}

	default:
		return map[string]any{"type": "unknown"}
	}
}

func encodePossibilities(possibilities []gract.Possibility) []map[string]any {
	out := make([]map[string]any, 0, len(possibilities))
	for _, p := range possibilities {
		out = append(out, encodePossibility(p))
	}
	return out
}

func encodePossibility(p gract.Possibility) map[string]any {
	switch v := p.(type) {
	case gract.Next:
		return map[string]any{"type": "next"}

	case gract.SelectCard:
		return map[string]any{"type": "select", "card-ids": v.CardIDs}

	case gract.SelectCollection:
		return map[string]any{"type": "select-coll", "coll-ids": v.CollectionIDs}

	case gract.AgainstCard:
		return map[string]any{
			"type":             "against",
			"select-card-id":   v.SelectCardID,
			"against-card-ids": v.AgainstCardIDs,
		}

	case gract.WildCard:
		return map[string]any{
			"type":     "wild",
			"card-id":  v.CardID,
			"type-ids": v.TypeIDs,
		}

	default:
		return map[string]any{"type": "unknown"}
	}
}
