package rummy

import (
	"strconv"

	"github.com/Seednode/cardhub/internal/gract"
)

// Card ids and type ids coincide for a standard deck: suit*100 + rank, for
// suit 0..3 (clubs, diamonds, hearts, spades) and rank 1..13. Type id 0 is
// "face-down" — a card whose identity is not yet known to the viewer.
var cardTypes = buildCardTypes()

var cardIDs = buildCardIDs()

func buildCardTypes() []gract.ShowType {
	suits := []string{"Clubs", "Diamonds", "Hearts", "Spades"}
	ranks := []string{"Ace", "2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King"}

	types := make([]gract.ShowType, 0, 1+len(suits)*len(ranks))
	types = append(types, gract.ShowType{
		TypeID:      0,
		Name:        "Unknown",
		Description: "The card's identity is unknown",
		ImageURL:    "/playing-cards/0.svg",
	})

	for suitNo, suit := range suits {
		for rankNo, rank := range ranks {
			id := suitNo*100 + rankNo + 1
			types = append(types, gract.ShowType{
				TypeID:      id,
				Name:        rank + " of " + suit,
				Description: rank + " of " + suit,
				ImageURL:    cardImageURL(id),
			})
		}
	}
	return types
}

func cardImageURL(id int) string {
	return "/playing-cards/" + strconv.Itoa(id) + ".svg"
}

func buildCardIDs() []int {
	ids := make([]int, 0, 52)
	for suitNo := 0; suitNo < 4; suitNo++ {
		for rankNo := 0; rankNo < 13; rankNo++ {
			ids = append(ids, suitNo*100+rankNo+1)
		}
	}
	return ids
}

