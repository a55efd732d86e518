package pipeline

import (
	"github.com/pkg/errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories hold the annotation files of every document. Files of the same
// document share a name across directories.
type Directories struct {
	Genes    string
	Taxa     string
	Entities string
}

// Document locates the annotation files of one document.
type Document struct {
	ID       string
	Genes    string
	Taxa     string
	Entities string
}

// DocumentID is the file name without its extension.
func DocumentID(name string) string {
	name = filepath.Base(name)
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// Documents lists the documents with a gene-mention file, sorted by file name.
func (d Directories) Documents() ([]Document, error) {
	infos, err := ioutil.ReadDir(d.Genes)
	if err != nil {
		return nil, errors.Wrapf(err, "listing gene mentions")
	}
	var docs []Document
	for _, info := range infos {
		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			continue
		}
		name := info.Name()
		docs = append(docs, Document{
			ID:       DocumentID(name),
			Genes:    filepath.Join(d.Genes, name),
			Taxa:     filepath.Join(d.Taxa, name),
			Entities: filepath.Join(d.Entities, name),
		})
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Genes < docs[j].Genes
	})
	return docs, nil
}

func missing(err error) bool {
	return os.IsNotExist(errors.Cause(err))
}
