package stats

import (
	"github.com/hashicorp/golang-lru"
	"strings"
)

// greekRunes spells out Greek letters; capital letters map to capitalised names.
var greekRunes = map[rune]string{
	0x0391: "Alpha",
	0x0392: "Beta",
	0x0393: "Gamma",
	0x0394: "Delta",
	0x0395: "Epsilon",
	0x0396: "Zeta",
	0x0397: "Eta",
	0x0398: "Theta",
	0x0399: "Iota",
	0x039A: "Kappa",
	0x039B: "Lambda",
	0x039C: "Mu",
	0x039D: "Nu",
	0x039E: "Xi",
	0x039F: "Omicron",
	0x03A0: "Pi",
	0x03A1: "Rho",
	0x03A3: "Sigma",
	0x03A4: "Tau",
	0x03A5: "Upsilon",
	0x03A6: "Phi",
	0x03A7: "Chi",
	0x03A8: "Psi",
	0x03A9: "Omega",
	0x03B1: "alpha",
	0x03B2: "beta",
	0x03B3: "gamma",
	0x03B4: "delta",
	0x03B5: "epsilon",
	0x03B6: "zeta",
	0x03B7: "eta",
	0x03B8: "theta",
	0x03B9: "iota",
	0x03BA: "kappa",
	0x03BB: "lambda",
	0x03BC: "mu",
	0x03BD: "nu",
	0x03BE: "xi",
	0x03BF: "omicron",
	0x03C0: "pi",
	0x03C1: "rho",
	0x03C2: "sigma",
	0x03C3: "sigma",
	0x03C4: "tau",
	0x03C5: "upsilon",
	0x03C6: "phi",
	0x03C7: "chi",
	0x03C8: "psi",
	0x03C9: "omega",
	0x03D0: "beta",
	0x03D1: "theta",
	0x03D5: "phi",
	0x03D6: "pi",
	0x03F0: "kappa",
	0x03F1: "rho",
	0x03F5: "epsilon",
}

// HasGreek reports whether s contains a letter Transliterate would replace.
func HasGreek(s string) bool {
	for _, r := range s {
		if _, ok := greekRunes[r]; ok {
			return true
		}
	}
	return false
}

// Transliterate replaces every Greek letter in s with its Latin name, e.g.
// "α-synuclein" becomes "alpha-synuclein".
func Transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if name, ok := greekRunes[r]; ok {
			b.WriteString(name)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolver finds the form of a symbol that is known to the global symbol
// table. Results are memoised since the same symbols recur across documents.
type Resolver struct {
	counters Counters
	cache    *lru.Cache
}

type resolution struct {
	key string
	ok  bool
}

// NewResolver creates a resolver over the symbol counters, remembering at most
// size resolutions.
func NewResolver(counters Counters, size int) (*Resolver, error) {
	if size <= 0 {
		size = 1
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Resolver{counters: counters, cache: c}, nil
}

// Resolve returns the raw symbol when it is known, otherwise its
// transliteration when that is known. ok is false when neither is.
func (r *Resolver) Resolve(symbol string) (key string, ok bool) {
	if v, hit := r.cache.Get(symbol); hit {
		res := v.(resolution)
		return res.key, res.ok
	}
	key, ok = symbol, false
	if _, found := r.counters.Symbols[symbol]; found {
		ok = true
	} else if HasGreek(symbol) {
		t := Transliterate(symbol)
		if _, found := r.counters.Symbols[t]; found {
			key, ok = t, true
		} else {
			key = t
		}
	}
	r.cache.Add(symbol, resolution{key: key, ok: ok})
	return key, ok
}

// Global is the document frequency of the resolved symbol.
func (r *Resolver) Global(symbol string) (int, string, bool) {
	key, ok := r.Resolve(symbol)
	if !ok {
		return 0, key, false
	}
	return r.counters.Symbols[key], key, true
}

// References is the reference count of the symbol for the identifier, trying
// the raw symbol before its transliteration.
func (r *Resolver) References(id, symbol string) (int, error) {
	symbols, ok := r.counters.References[id]
	if !ok {
		return 0, ErrUnknownIdentifier
	}
	if n, ok := symbols[symbol]; ok {
		return n, nil
	}
	if HasGreek(symbol) {
		if n, ok := symbols[Transliterate(symbol)]; ok {
			return n, nil
		}
	}
	return 0, ErrUnknownReference
}
