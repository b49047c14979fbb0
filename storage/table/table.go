package table

import (
	"path/filepath"
	"strings"

	"github.com/ryogrid/SamehadaSMJ/storage/page"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

// Relation is what sort-merge join reads. pages are already on memory and read only.
type Relation interface {
	GetTableName() string
	Schema() *Schema
	Pages() []*page.Page
}

// Table is an in memory paged relation loaded from a csv file
type Table struct {
	name     string
	schema   *Schema
	pages    []*page.Page
	filePath string
}

// NewTable creates an empty table. name of the table is the file name without extension.
func NewTable(filePath string) *Table {
	base := filepath.Base(filePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return &Table{name, NewSchema(nil), make([]*page.Page, 0), filePath}
}

// NewTableFromTuples builds a table on memory. tuples are packed into full pages in order.
func NewTableFromTuples(name string, columns []string, tuples []*tuple.Tuple) *Table {
	ret := &Table{name, NewSchema(columns), make([]*page.Page, 0), ""}
	for _, tuple_ := range tuples {
		ret.InsertTuple(tuple_)
	}
	return ret
}

func (t *Table) GetTableName() string { return t.name }

func (t *Table) Schema() *Schema { return t.schema }

func (t *Table) Pages() []*page.Page { return t.pages }

func (t *Table) PageQuantity() int { return len(t.pages) }

// InsertTuple appends the tuple to the last page. a new page is added when it is full.
func (t *Table) InsertTuple(tuple_ *tuple.Tuple) {
	if len(t.pages) == 0 || !t.pages[len(t.pages)-1].AddTuple(tuple_) {
		newPage := page.NewPage()
		newPage.AddTuple(tuple_)
		t.pages = append(t.pages, newPage)
	}
}

// GetTuples returns all tuples in page order
func (t *Table) GetTuples() []*tuple.Tuple {
	ret := make([]*tuple.Tuple, 0)
	for _, page_ := range t.pages {
		ret = append(ret, page_.GetTuples()...)
	}
	return ret
}

func (t *Table) TupleCount() int {
	cnt := 0
	for _, page_ := range t.pages {
		cnt += page_.OccupiedTuples()
	}
	return cnt
}
