package order

import (
	"math/big"
	"strings"

	"golang.org/x/exp/slices"
)

// Compare orders variable labels naturally: labels which are integers come
// first and are ordered by value, all other labels follow in byte order.
// Integers of arbitrary length are supported, so "2" < "10" < "a*b".
func Compare(a, b string) int {
	x, aNum := integer(a)
	y, bNum := integer(b)
	switch {
	case aNum && bNum:
		if c := x.Cmp(y); c != 0 {
			return c
		}
		// "01" and "1" are different labels with the same value
		return strings.Compare(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(a, b)
}

func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts labels in place in natural order.
func Sort(labels []string) {
	slices.SortFunc(labels, Compare)
}

func integer(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
