// Package possibility implements the per-player possibility tracker (§4.4):
// the record of actions a module has most recently advertised to a player,
// and the validation of an incoming action against it.
package possibility

import "github.com/Seednode/cardhub/internal/gract"

// Set is one player's currently active possibility list. It is replaced
// wholesale whenever the module emits a possible-actions gract for that
// player — there is no incremental update.
type Set []gract.Possibility

// Accepts reports whether action matches some possibility in the set. The
// first matching possibility wins; earlier possibilities shadow later
// duplicates, so the scan always proceeds in list order and returns on the
// first hit. The scan is linear, which is fine — possibility lists are
// short (see spec design notes on validation performance).
func (s Set) Accepts(action gract.Action) bool {
	switch a := action.(type) {
	case gract.NextAction:
		for _, p := range s {
			if _, ok := p.(gract.Next); ok {
				return true
			}
		}

	case gract.SelectCardAction:
		for _, p := range s {
			sc, ok := p.(gract.SelectCard)
			if !ok {
				continue
			}
			if containsInt(sc.CardIDs, a.CardID) {
				return true
			}
		}

	case gract.SelectCollectionAction:
		for _, p := range s {
			sc, ok := p.(gract.SelectCollection)
			if !ok {
				continue
			}
			if containsInt(sc.CollectionIDs, a.CollectionID) {
				return true
			}
		}

	case gract.AgainstCardAction:
		for _, p := range s {
			ac, ok := p.(gract.AgainstCard)
			if !ok {
				continue
			}
			if ac.SelectCardID == a.SelectCardID && containsInt(ac.AgainstCardIDs, a.AgainstCardID) {
				return true
			}
		}

	case gract.WildCardAction:
		for _, p := range s {
			wc, ok := p.(gract.WildCard)
			if !ok {
				continue
			}
			if wc.CardID == a.CardID && containsInt(wc.TypeIDs, a.TypeID) {
				return true
			}
		}
	}

	return false
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// FromGracts scans a gract list for possible-actions entries and returns
// the possibility set that a player would end up with after it is applied
// — the last such entry seen (later replaces earlier within the same
// list), or nil if the list contains none.
func FromGracts(gracts []gract.Gract) (Set, bool) {
	var found Set
	ok := false
	for _, g := range gracts {
		if pa, isPA := g.(gract.PossibleActions); isPA {
			found = Set(pa.Possibilities)
			ok = true
		}
	}
	return found, ok
}
