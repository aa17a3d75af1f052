package rummy

import "sort"

// checkHand reports whether hand (7 cards, possibly fewer after melding)
// can be fully resolved into runs of 3+ consecutive same-suit cards and
// sets of 3+ same-rank cards, leaving nothing over — a winning rummy hand.
// Ported from the reference implementation's set-then-run sweep.
func checkHand(hand []int) bool {
	marked := append([]int(nil), hand...)
	sort.Ints(marked)

	for i := 0; i < len(marked) && i < 5; i++ {
		if marked[i] == 0 {
			continue
		}
		value := marked[i] % 100
		count := 1
		for j := i + 1; j < len(marked); j++ {
			if marked[j] == 0 {
				continue
			}
			if marked[j]%100 == value {
				count++
			}
		}
		if count >= 3 {
			for j := i; j < len(marked); j++ {
				if marked[j] != 0 && marked[j]%100 == value {
					marked[j] = 0
				}
			}
		}
	}

	startIdx := -1
	endIdx := -1
	prevCard := 0
	for i := 0; i < len(marked); i++ {
		if marked[i] == 0 {
			continue
		}
		endIdx = i

		switch {
		case startIdx == -1:
			startIdx = i
		case marked[i] != prevCard+1 || (i-startIdx) == 4:
			if (i - startIdx) < 3 {
				return false
			}
			for j := startIdx; j < i; j++ {
				marked[j] = 0
			}
			startIdx = i
		}

		prevCard = marked[i]
	}

	if startIdx != -1 && (endIdx-startIdx+1) >= 3 {
		for j := startIdx; j <= endIdx; j++ {
			marked[j] = 0
		}
	}

	for _, c := range marked {
		if c != 0 {
			return false
		}
	}
	return true
}
