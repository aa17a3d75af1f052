package gract

// Possibility is an advertised action a player may later exercise. The set
// of concrete types is closed, mirroring Gract.
type Possibility interface {
	isPossibility()
}

// Next is a generic acknowledgement/advance possibility.
type Next struct{}

func (Next) isPossibility() {}

// SelectCard advertises that the player may select one of CardIDs.
type SelectCard struct {
	CardIDs []int
}

func (SelectCard) isPossibility() {}

// SelectCollection advertises that the player may select one of CollectionIDs.
type SelectCollection struct {
	CollectionIDs []int
}

func (SelectCollection) isPossibility() {}

// AgainstCard advertises that the player may play SelectCardID against one
// of AgainstCardIDs.
type AgainstCard struct {
	SelectCardID   int
	AgainstCardIDs []int
}

func (AgainstCard) isPossibility() {}

// WildCard advertises that the player may transform CardID into one of
// TypeIDs.
type WildCard struct {
	CardID  int
	TypeIDs []int
}

func (WildCard) isPossibility() {}
