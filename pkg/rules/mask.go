package rules

// matchMask reports whether s matches a wildcard mask. '*' matches any run
// of characters including path separators, '?' matches a single character.
// Masks in cleanup policies are deliberately simpler than full globs: there
// are no character classes and no escaping.
func matchMask(mask, s string) bool {
	// Iterative backtracking match.
	mi, si := 0, 0
	star, backtrack := -1, 0

	for si < len(s) {
		switch {
		case mi < len(mask) && (mask[mi] == '?' || mask[mi] == s[si]):
			mi++
			si++
		case mi < len(mask) && mask[mi] == '*':
			star = mi
			backtrack = si
			mi++
		case star >= 0:
			mi = star + 1
			backtrack++
			si = backtrack
		default:
			return false
		}
	}

	for mi < len(mask) && mask[mi] == '*' {
		mi++
	}
	return mi == len(mask)
}
