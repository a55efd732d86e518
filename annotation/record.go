package annotation

// EntityType is the class assigned to a named-entity span.
type EntityType int

const (
	// Untyped is a span whose label is not one of the known entity classes.
	Untyped EntityType = iota
	CellLine
	CellType
	DNA
	Protein
	RNA
)

var entityLabels = map[string]EntityType{
	"cell_line": CellLine,
	"cell_type": CellType,
	"DNA":       DNA,
	"protein":   Protein,
	"RNA":       RNA,
}

// ParseEntityType maps an annotator label to an entity type. Unknown labels
// are Untyped.
func ParseEntityType(label string) EntityType {
	if t, ok := entityLabels[label]; ok {
		return t
	}
	return Untyped
}

func (t EntityType) String() string {
	switch t {
	case CellLine:
		return "cell_line"
	case CellType:
		return "cell_type"
	case DNA:
		return "DNA"
	case Protein:
		return "protein"
	case RNA:
		return "RNA"
	}
	return "untyped"
}

// GeneMention is one candidate gene identifier for a matched surface string.
type GeneMention struct {
	Before string
	Prefix string
	Match  string
	Suffix string
	After  string
	POS    string
	Offset Offset
	// ID is the candidate gene identifier, in canonical integer form.
	ID         string
	Similarity float64
	// Symbol is the resolved symbol text the match was normalised to.
	Symbol string
	Taxon  int
	// Entrez is the gene identifier compared against the gold standard, in
	// canonical integer form.
	Entrez string
}

// TaxonHit is an organism mention.
type TaxonHit struct {
	Match      string
	Offset     Offset
	Taxon      int
	Similarity float64
}

// Span is a typed text span; entity and sentence annotations share this shape.
type Span struct {
	Match      string
	Offset     Offset
	Label      string
	Confidence float64
}

// GoldItem is one correct identifier for a document.
type GoldItem struct {
	Document string
	Entrez   string
}

// Linkout is the number of external references for an identifier.
type Linkout struct {
	ID    string
	Count int
}

// Counter holds the reference count of a symbol for an identifier and the
// global document frequency of the symbol.
type Counter struct {
	ID         string
	Symbol     string
	References int
	Global     int
}
