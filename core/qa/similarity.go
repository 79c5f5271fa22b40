// Package qa validates generated items and fills a content bank to a
// target count while rejecting broken and near-duplicate candidates.
package qa

// Ratio computes a Ratcliff/Obershelp similarity between two strings,
// as 2*M/T where M is the number of matching characters found by
// recursively locating the longest common substring, and T is the total
// length of both strings. The result is in [0, 1] and symmetric.
func Ratio(a string, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	matches := matchingCharacters([]rune(a), []rune(b))
	return 2.0 * float64(matches) / float64(len([]rune(a))+len([]rune(b)))
}

// matchingCharacters counts matched characters by finding the longest
// common substring and recursing into the unmatched pieces on both sides
func matchingCharacters(a []rune, b []rune) int {
	aStart, bStart, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}

	matches := size
	matches += matchingCharacters(a[:aStart], b[:bStart])
	matches += matchingCharacters(a[aStart+size:], b[bStart+size:])
	return matches
}

// longestCommonSubstring returns the start positions and length of the
// longest substring common to a and b. Rolling single-row DP keeps the
// memory footprint at O(len(b)).
func longestCommonSubstring(a []rune, b []rune) (aStart int, bStart int, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	row := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			current := row[j]
			if a[i-1] == b[j-1] {
				row[j] = prev + 1
				if row[j] > size {
					size = row[j]
					aStart = i - size
					bStart = j - size
				}
			} else {
				row[j] = 0
			}
			prev = current
		}
	}

	return aStart, bStart, size
}
