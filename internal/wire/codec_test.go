package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/cardhub/internal/gract"
)

func TestDecode_Intro(t *testing.T) {
	frame, err := Decode([]byte(`{"type":"intro","player-name":"Ada"}`))
	require.NoError(t, err)
	assert.Equal(t, Intro{PlayerName: "Ada"}, frame)
}

func TestDecode_MissingField(t *testing.T) {
	_, err := Decode([]byte(`{"type":"intro"}`))
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestDecode_UnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"nonsense"}`))
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestDecode_WrongFieldType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"action","action-type":"select","card-id":"not-a-number"}`))
	assert.True(t, errors.Is(err, ErrProtocolViolation))
}

func TestDecode_ActionVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want gract.Action
	}{
		{"next", `{"type":"action","action-type":"next"}`, gract.NextAction{}},
		{"select", `{"type":"action","action-type":"select","card-id":5}`, gract.SelectCardAction{CardID: 5}},
		{"select-coll", `{"type":"action","action-type":"select-coll","coll-id":-1}`, gract.SelectCollectionAction{CollectionID: -1}},
		{"against", `{"type":"action","action-type":"against","select-card-id":1,"against-card-id":2}`, gract.AgainstCardAction{SelectCardID: 1, AgainstCardID: 2}},
		{"wild", `{"type":"action","action-type":"wild","card-id":1,"type-id":2}`, gract.WildCardAction{CardID: 1, TypeID: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frame, err := Decode([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, Action{Action: tc.want}, frame)
		})
	}
}

func TestEncodeDecodeServer_RoundTrip(t *testing.T) {
	anchor := 3
	frame := GractList{Gracts: []gract.Gract{
		gract.ShowType{TypeID: 1, Name: "Ace", Description: "Ace of clubs", ImageURL: "/1.svg"},
		gract.ShowCollection{CollectionID: 3, AnchorPlayerID: &anchor, Display: gract.Hand},
		gract.ShowCard{CardID: 1, TypeID: 1, CollectionID: 3},
		gract.PossibleActions{Possibilities: []gract.Possibility{
			gract.SelectCard{CardIDs: []int{1, 2}},
			gract.AgainstCard{SelectCardID: 1, AgainstCardIDs: []int{2, 3}},
		}},
	}}

	data, err := Encode(frame)
	require.NoError(t, err)

	decoded, err := DecodeServer(data)
	require.NoError(t, err)
	assert.Equal(t, frame, decoded)
}

func TestEncode_EndGameWithStandings(t *testing.T) {
	frame := EndGame{Reason: "player left", Standings: []Standing{{PlayerID: 0, Note: "15 points"}}}

	data, err := Encode(frame)
	require.NoError(t, err)

	decoded, err := DecodeServer(data)
	require.NoError(t, err)
	assert.Equal(t, frame, decoded)
}

func TestEncodeDecodeClient_RoundTrip(t *testing.T) {
	frame := Action{Action: gract.WildCardAction{CardID: 4, TypeID: 9}}

	data, err := EncodeClient(frame)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, frame, decoded)
}
