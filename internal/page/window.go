package page

import (
	"slices"
	"strconv"
	"strings"
)

// Item is one slot of the page strip: either a page number or an ellipsis.
type Item struct {
	Page     int
	Ellipsis bool
}

// Window returns the compact page strip for the given position. Page 1, the
// last page and every page within delta of current are always present; a
// single ellipsis marks each skipped gap.
func Window(current, total, delta int) []Item {
	if total < 1 {
		return nil
	}

	current = Clamp(current, total)
	if delta < 0 {
		delta = 0
	}

	pages := []int{1, total}

	for p := current - delta; p <= current+delta; p++ {
		if p >= 1 && p <= total {
			pages = append(pages, p)
		}
	}

	// Never collapse to only the two endpoints when sitting on one of them.
	if total >= 3 {
		if current == 1 {
			pages = append(pages, 2)
		}

		if current == total {
			pages = append(pages, total-1)
		}
	}

	slices.Sort(pages)
	pages = slices.Compact(pages)

	items := make([]Item, 0, len(pages)*2)

	for i, p := range pages {
		if i > 0 && p-pages[i-1] > 1 {
			items = append(items, Item{Ellipsis: true})
		}

		items = append(items, Item{Page: p})
	}

	return items
}

// Clamp bounds p to [1, total]. A total below 1 is treated as a single page.
func Clamp(p, total int) int {
	if total < 1 {
		total = 1
	}

	return max(1, min(p, total))
}

// DigitsOnly strips everything that is not an ASCII digit.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, s)
}

// Jump parses free-form jump-to-page input and clamps it into [1, total].
// Empty or unparsable input lands on page 1.
func Jump(input string, total int) int {
	digits := DigitsOnly(input)
	if digits == "" {
		return 1
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow can fail here.
		return Clamp(total, total)
	}

	return Clamp(n, total)
}
