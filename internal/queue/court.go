package queue

import "fmt"

// Court assigns match numbers to courts round-robin: with 3 courts, matches
// 1..7 land on courts 1,2,3,1,2,3,1.
func Court(matchNumber, courts int) (int, error) {
	if courts < 1 {
		return 0, fmt.Errorf("%w (got %d)", ErrInvalidConfiguration, courts)
	}
	if matchNumber < 1 {
		return 0, fmt.Errorf("%w: match %d", ErrUnknownMatch, matchNumber)
	}
	return (matchNumber-1)%courts + 1, nil
}
