package executors

import (
	"github.com/ryogrid/SamehadaSMJ/storage/page"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
)

type Done bool

// Executor executes a plan
//
// Init initializes this executor.
// This function must be called before Next() is called!
//
// Next produces the next tuple from this executor
type Executor interface {
	Init() error
	Next() (*tuple.Tuple, Done, error)
	GetOutputSchema() *table.Schema
}

// PageExecutor can hand over its input a page at a time.
// ExternalSortExecutor reads its child through this.
type PageExecutor interface {
	Executor
	NextPage() (*page.Page, Done, error)
}
