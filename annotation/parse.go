package annotation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MalformedRecordError reports a line that could not be parsed.
type MalformedRecordError struct {
	Path   string
	Line   int
	Reason string
}

func (e MalformedRecordError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

// Unquote keeps the text between the first and last double quote of s.
func Unquote(s string) (string, error) {
	i := strings.Index(s, `"`)
	j := strings.LastIndex(s, `"`)
	if i < 0 || i == j {
		return "", fmt.Errorf("field %q is not quoted", s)
	}
	return s[i+1 : j], nil
}

func tabs(line string) []string {
	return strings.Split(line, "\t")
}

// scan calls fn with the fields of every non-blank line of r. Errors returned
// by fn are reported as malformed records at that line.
func scan(r io.Reader, name string, columns int, split func(string) []string, fn func([]string) error) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimRight(s.Text(), "\r\n")
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		fields := split(line)
		if len(fields) != columns {
			return MalformedRecordError{Path: name, Line: n, Reason: fmt.Sprintf("expected %d columns, got %d", columns, len(fields))}
		}
		if err := fn(fields); err != nil {
			return MalformedRecordError{Path: name, Line: n, Reason: err.Error()}
		}
	}
	if err := s.Err(); err != nil {
		return MalformedRecordError{Path: name, Line: n + 1, Reason: err.Error()}
	}
	return nil
}

func scanFile(path string, columns int, split func(string) []string, fn func([]string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scan(f, path, columns, split, fn)
}

func parseInt(field, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer", name, field)
	}
	return v, nil
}

// parseIdentifier reads an integer identifier and returns its canonical
// spelling, so "07157" and " 7157" both become "7157".
func parseIdentifier(field, name string) (string, error) {
	v, err := parseInt(field, name)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(v), nil
}

func parseFloat(field, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", name, field)
	}
	return v, nil
}

func parseGeneMention(f []string) (GeneMention, error) {
	var (
		g   GeneMention
		err error
	)
	g.Before, g.Prefix, g.Match, g.Suffix, g.After, g.POS = f[0], f[1], f[2], f[3], f[4], f[5]
	if g.Offset, err = ParseOffset(f[6]); err != nil {
		return g, err
	}
	if g.ID, err = parseIdentifier(f[7], "identifier"); err != nil {
		return g, err
	}
	if g.Similarity, err = parseFloat(f[8], "similarity"); err != nil {
		return g, err
	}
	if g.Symbol, err = Unquote(f[9]); err != nil {
		return g, err
	}
	taxon, err := Unquote(f[10])
	if err != nil {
		return g, err
	}
	if g.Taxon, err = parseInt(taxon, "taxon"); err != nil {
		return g, err
	}
	entrez, err := Unquote(f[11])
	if err != nil {
		return g, err
	}
	if g.Entrez, err = parseIdentifier(entrez, "entrez id"); err != nil {
		return g, err
	}
	return g, nil
}

// ParseGeneMentions reads the 12-column gene-mention stream.
func ParseGeneMentions(r io.Reader, name string) ([]GeneMention, error) {
	var mentions []GeneMention
	err := scan(r, name, 12, tabs, func(f []string) error {
		g, err := parseGeneMention(f)
		if err != nil {
			return err
		}
		mentions = append(mentions, g)
		return nil
	})
	return mentions, err
}

// ReadGeneMentions reads a gene-mention file.
func ReadGeneMentions(path string) ([]GeneMention, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseGeneMentions(f, path)
}

// ParseTaxa reads the 4-column taxon stream.
func ParseTaxa(r io.Reader, name string) ([]TaxonHit, error) {
	var hits []TaxonHit
	err := scan(r, name, 4, tabs, func(f []string) error {
		var (
			t   = TaxonHit{Match: f[0]}
			err error
		)
		if t.Offset, err = ParseOffset(f[1]); err != nil {
			return err
		}
		if t.Taxon, err = parseInt(f[2], "taxon"); err != nil {
			return err
		}
		if t.Similarity, err = parseFloat(f[3], "similarity"); err != nil {
			return err
		}
		hits = append(hits, t)
		return nil
	})
	return hits, err
}

// ReadTaxa reads a taxon file.
func ReadTaxa(path string) ([]TaxonHit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTaxa(f, path)
}

// ParseSpans reads the 4-column entity or sentence stream.
func ParseSpans(r io.Reader, name string) ([]Span, error) {
	var spans []Span
	err := scan(r, name, 4, tabs, func(f []string) error {
		var (
			s   = Span{Match: f[0], Label: strings.TrimSpace(f[2])}
			err error
		)
		if s.Offset, err = ParseOffset(f[1]); err != nil {
			return err
		}
		if s.Confidence, err = parseFloat(f[3], "confidence"); err != nil {
			return err
		}
		spans = append(spans, s)
		return nil
	})
	return spans, err
}

// ReadSpans reads an entity or sentence file.
func ReadSpans(path string) ([]Span, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSpans(f, path)
}

// ReadGold reads document-id, entrez-id pairs.
func ReadGold(path string) ([]GoldItem, error) {
	var items []GoldItem
	err := scanFile(path, 2, tabs, func(f []string) error {
		id, err := parseIdentifier(f[1], "entrez id")
		if err != nil {
			return err
		}
		items = append(items, GoldItem{Document: strings.TrimSpace(f[0]), Entrez: id})
		return nil
	})
	return items, err
}

// ReadLinkouts reads identifier, count pairs separated by any whitespace.
func ReadLinkouts(path string) ([]Linkout, error) {
	var links []Linkout
	err := scanFile(path, 2, strings.Fields, func(f []string) error {
		id, err := parseIdentifier(f[0], "identifier")
		if err != nil {
			return err
		}
		count, err := parseInt(f[1], "linkout count")
		if err != nil {
			return err
		}
		links = append(links, Linkout{ID: id, Count: count})
		return nil
	})
	return links, err
}

// ReadCounters reads the 4-column reference and global symbol counter file.
func ReadCounters(path string) ([]Counter, error) {
	var counters []Counter
	err := scanFile(path, 4, tabs, func(f []string) error {
		var (
			c   = Counter{Symbol: f[1]}
			err error
		)
		if c.ID, err = parseIdentifier(f[0], "identifier"); err != nil {
			return err
		}
		if c.References, err = parseInt(f[2], "reference count"); err != nil {
			return err
		}
		if c.Global, err = parseInt(f[3], "global count"); err != nil {
			return err
		}
		counters = append(counters, c)
		return nil
	})
	return counters, err
}
