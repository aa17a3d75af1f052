package wire

import (
	"encoding/json"
	"fmt"

	"github.com/Seednode/cardhub/internal/gract"
)

// DecodeServer parses one server-to-client frame. It exists for the test
// suite's round-trip law and for mock clients driving the engine in tests;
// a real client implementation is free to parse the wire format however it
// likes.
func DecodeServer(raw []byte) (ServerFrame, error) {
	var env struct {
		Type      string            `json:"type"`
		GameID    *int              `json:"game-id,omitempty"`
		PlayerID  *int              `json:"player-id,omitempty"`
		GractList []json.RawMessage `json:"gract-list,omitempty"`
		Reason    *string           `json:"reason,omitempty"`
		Standings []struct {
			PlayerID int    `json:"player-id"`
			Note     string `json:"note"`
		} `json:"standings,omitempty"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}

	switch env.Type {
	case "intro":
		if env.GameID == nil || env.PlayerID == nil {
			return nil, fmt.Errorf("%w: intro missing game-id/player-id", ErrProtocolViolation)
		}
		return ServerIntro{GameID: *env.GameID, PlayerID: *env.PlayerID}, nil

	case "gract-list":
		gracts := make([]gract.Gract, 0, len(env.GractList))
		for _, raw := range env.GractList {
			g, err := decodeGract(raw)
			if err != nil {
				return nil, err
			}
			gracts = append(gracts, g)
		}
		return GractList{Gracts: gracts}, nil

	case "end-round":
		if env.Reason == nil {
			return nil, fmt.Errorf("%w: end-round missing reason", ErrProtocolViolation)
		}
		return EndRound{Reason: *env.Reason, Standings: decodeStandings(env.Standings)}, nil

	case "end-game":
		if env.Reason == nil {
			return nil, fmt.Errorf("%w: end-game missing reason", ErrProtocolViolation)
		}
		return EndGame{Reason: *env.Reason, Standings: decodeStandings(env.Standings)}, nil

	case "error":
		if env.Reason == nil {
			return nil, fmt.Errorf("%w: error missing reason", ErrProtocolViolation)
		}
		return Error{Reason: *env.Reason}, nil

	default:
		return nil, fmt.Errorf("%w: unknown server frame type %q", ErrProtocolViolation, env.Type)
	}
}

func decodeStandings(raw []struct {
	PlayerID int    `json:"player-id"`
	Note     string `json:"note"`
}) []Standing {
	out := make([]Standing, 0, len(raw))
	for _, s := range raw {
		out = append(out, Standing{PlayerID: s.PlayerID, Note: s.Note})
	}
	return out
}

func decodeGract(raw json.RawMessage) (gract.Gract, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}

	switch head.Type {
	case "show-type":
		var v struct {
			TypeID      int    `json:"type-id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			ImageURL    string `json:"image-url"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.ShowType{TypeID: v.TypeID, Name: v.Name, Description: v.Description, ImageURL: v.ImageURL}, nil

	case "show-collection":
		var v struct {
			CollectionID   int    `json:"collection-id"`
			AnchorPlayerID *int   `json:"anchor-player-id"`
			Display        string `json:"display"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.ShowCollection{
			CollectionID:   v.CollectionID,
			AnchorPlayerID: v.AnchorPlayerID,
			Display:        gract.CollectionDisplay(v.Display),
		}, nil

	case "hide-collection":
		var v struct {
			CollectionID int `json:"collection-id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.HideCollection{CollectionID: v.CollectionID}, nil

	case "show-card":
		var v struct {
			CardID       int `json:"card-id"`
			TypeID       int `json:"type-id"`
			CollectionID int `json:"collection-id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.ShowCard{CardID: v.CardID, TypeID: v.TypeID, CollectionID: v.CollectionID}, nil

	case "hide-card":
		var v struct {
			CardID int `json:"card-id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.HideCard{CardID: v.CardID}, nil

	case "move-card":
		var v struct {
			CardID       int `json:"card-id"`
			CollectionID int `json:"collection-id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.MoveCard{CardID: v.CardID, CollectionID: v.CollectionID}, nil

	case "reveal-card":
		var v struct {
			OldCardID int `json:"old-card-id"`
			NewCardID int `json:"new-card-id"`
			NewTypeID int `json:"new-type-id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.RevealCard{OldCardID: v.OldCardID, NewCardID: v.NewCardID, NewTypeID: v.NewTypeID}, nil

	case "conceal-card":
		var v struct {
			OldCardID int `json:"old-card-id"`
			NewCardID int `json:"new-card-id"`
			NewTypeID int `json:"new-type-id"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.ConcealCard{OldCardID: v.OldCardID, NewCardID: v.NewCardID, NewTypeID: v.NewTypeID}, nil

	case "possible-actions":
		var v struct {
			PossibleActions []json.RawMessage `json:"possible-actions"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		possibilities := make([]gract.Possibility, 0, len(v.PossibleActions))
		for _, pRaw := range v.PossibleActions {
			p, err := decodePossibility(pRaw)
			if err != nil {
				return nil, err
			}
			possibilities = append(possibilities, p)
		}
		return gract.PossibleActions{Possibilities: possibilities}, nil

	default:
		return nil, fmt.Errorf("%w: unknown gract type %q", ErrProtocolViolation, head.Type)
	}
}

func decodePossibility(raw json.RawMessage) (gract.Possibility, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}

	switch head.Type {
	case "next":
		return gract.Next{}, nil

	case "select":
		var v struct {
			CardIDs []int `json:"card-ids"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.SelectCard{CardIDs: v.CardIDs}, nil

	case "select-coll":
		var v struct {
			CollIDs []int `json:"coll-ids"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.SelectCollection{CollectionIDs: v.CollIDs}, nil

	case "against":
		var v struct {
			SelectCardID   int   `json:"select-card-id"`
			AgainstCardIDs []int `json:"against-card-ids"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.AgainstCard{SelectCardID: v.SelectCardID, AgainstCardIDs: v.AgainstCardIDs}, nil

	case "wild":
		var v struct {
			CardID  int   `json:"card-id"`
			TypeIDs []int `json:"type-ids"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
		}
		return gract.WildCard{CardID: v.CardID, TypeIDs: v.TypeIDs}, nil

	default:
		return nil, fmt.Errorf("%w: unknown possibility type %q", ErrProtocolViolation, head.Type)
	}
}

// EncodeClient renders one client-to-server frame as JSON, for tests that
// drive the engine as a mock client.
func EncodeClient(frame ClientFrame) ([]byte, error) {
	switch f := frame.(type) {
	case Intro:
		return json.Marshal(map[string]any{"type": "intro", "player-name": f.PlayerName})

	case StartRound:
		return json.Marshal(map[string]any{"type": "start-round"})

	case Action:
		return json.Marshal(encodeClientAction(f.Action))

	default:
		return nil, fmt.Errorf("wire: unknown client frame type %T", frame)
	}
}

func encodeClientAction(action gract.Action) map[string]any {
	switch a := action.(type) {
	case gract.NextAction:
		return map[string]any{"type": "action", "action-type": "next"}

	case gract.SelectCardAction:
		return map[string]any{"type": "action", "action-type": "select", "card-id": a.CardID}

	case gract.SelectCollectionAction:
		return map[string]any{"type": "action", "action-type": "select-coll", "coll-id": a.CollectionID}

	case gract.AgainstCardAction:
		return map[string]any{
			"type":            "action",
			"action-type":     "against",
			"select-card-id":  a.SelectCardID,
			"against-card-id": a.AgainstCardID,
		}

	case gract.WildCardAction:
		return map[string]any{
			"type":        "action",
			"action-type": "wild",
			"card-id":     a.CardID,
			"type-id":     a.TypeID,
		}

	default:
		return map[string]any{"type": "action", "action-type": "unknown"}
	}
}
