package english

import "vnime/internal/keys"

// RawPattern reports key sequences that only English words produce, checked
// on the keys as typed so that Telex modifiers inside them ("ex", "ef") are
// never applied. Sequences that also spell common Vietnamese words, such as
// "sex" for sẽ or "ref" for rè, only count once a further letter follows.
func RawPattern(raw []uint16) bool {
	n := len(raw)
	if n < 2 {
		return false
	}
	if n == 2 {
		return raw[0] == keys.E && raw[1] == keys.X
	}
	switch {
	case raw[0] == keys.E && raw[1] == keys.X && raw[2] == keys.P:
		return true
	case raw[0] == keys.I && raw[1] == keys.M && raw[2] == keys.P:
		return true
	case hasRun(raw, keys.E, keys.L, keys.E):
		return true
	}
	if n < 4 {
		return false
	}
	switch {
	case raw[0] == keys.C && raw[1] == keys.O && raw[2] == keys.M && oneOf(raw[3], keys.P, keys.M, keys.B):
		return true
	case raw[1] == keys.E && raw[2] == keys.X && keys.IsLetter(raw[3]) &&
		oneOf(raw[0], keys.T, keys.N, keys.S, keys.R, keys.D):
		return true
	case raw[1] == keys.E && raw[2] == keys.F && keys.IsLetter(raw[3]) &&
		oneOf(raw[0], keys.R, keys.D, keys.P):
		return true
	}
	return consonantE(raw)
}

// consonantE matches a consonant, "e", at least one consonant and another
// "e": tele, reve, refe, gene.
func consonantE(raw []uint16) bool {
	for i := 0; i+3 < len(raw); i++ {
		if raw[i+1] != keys.E || !keys.IsConsonant(raw[i]) {
			continue
		}
		between := false
		for j := i + 2; j < len(raw); j++ {
			if raw[j] == keys.E && between {
				return true
			}
			if keys.IsConsonant(raw[j]) {
				between = true
			}
		}
	}
	return false
}

func hasRun(raw []uint16, a, b, c uint16) bool {
	for i := 0; i+2 < len(raw); i++ {
		if raw[i] == a && raw[i+1] == b && raw[i+2] == c {
			return true
		}
	}
	return false
}

func oneOf(k uint16, set ...uint16) bool {
	for _, s := range set {
		if k == s {
			return true
		}
	}
	return false
}
