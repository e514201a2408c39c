package pattern

// Search returns the lowest offset in buf at which every exact token of p
// matches the corresponding buffer byte and every wildcard token matches
// unconditionally. The second return is false when no such offset exists,
// including when the pattern is longer than the buffer.
//
// The scan is a Horspool-style skip search. Wildcards never contribute to
// the skip table: a wildcard carries no skip information, so it must not
// overwrite a more specific entry from an earlier exact byte. In the
// comparison step a wildcard still matches any byte, so correctness is
// unaffected; only the average-case skip distance shrinks.
func Search(buf []byte, p Pattern) (int, bool) {
	n := len(p)
	if n == 0 || n > len(buf) {
		return 0, false
	}

	var table [256]int
	for i := range table {
		table[i] = n
	}
	for i := 0; i < n-1; i++ {
		if !p[i].Wildcard {
			table[p[i].Value] = n - 1 - i
		}
	}

	for c := n - 1; c < len(buf); {
		i := n - 1
		for i >= 0 && (p[i].Wildcard || p[i].Value == buf[c-(n-1)+i]) {
			i--
		}
		if i < 0 {
			return c - (n - 1), true
		}

		// Skip by the buffer byte aligned with the pattern's last
		// position, never by less than one.
		step := table[buf[c]]
		if step < 1 {
			step = 1
		}
		c += step
	}
	return 0, false
}
