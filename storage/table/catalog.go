package table

import (
	"path/filepath"

	"github.com/ryogrid/SamehadaSMJ/common"
	"golang.org/x/exp/slices"
)

// Catalog is a non-persistent catalog of relations loaded from csv files under dataDir.
// It handles table loading and table lookup
type Catalog struct {
	dataDir     string
	tables      map[uint32]*Table
	names       map[string]uint32
	nextTableId uint32
}

func NewCatalog(dataDir string) *Catalog {
	return &Catalog{dataDir, make(map[uint32]*Table), make(map[string]uint32), 0}
}

// GetTableByName returns nil when no table has the name
func (c *Catalog) GetTableByName(table string) *Table {
	oid, ok := c.names[table]
	if !ok {
		return nil
	}
	return c.tables[oid]
}

func (c *Catalog) GetTableByOID(oid uint32) *Table {
	return c.tables[oid]
}

// LoadTable loads fileName under the data directory and registers it by its table name.
// a table which has same name is replaced.
func (c *Catalog) LoadTable(fileName string) (*Table, error) {
	tbl := NewTable(filepath.Join(c.dataDir, fileName))
	if err := tbl.LoadData(); err != nil {
		return nil, err
	}
	c.RegisterTable(tbl)
	common.ShPrintf(common.INFO, "%s loaded: %d tuples in %d pages\n", tbl.GetTableName(), tbl.TupleCount(), tbl.PageQuantity())
	return tbl, nil
}

// RegisterTable adds a table built on memory and returns its oid
func (c *Catalog) RegisterTable(tbl *Table) uint32 {
	oid, exist := c.names[tbl.GetTableName()]
	if !exist {
		oid = c.nextTableId
		c.nextTableId++
		c.names[tbl.GetTableName()] = oid
	}
	c.tables[oid] = tbl
	return oid
}

func (c *Catalog) TableNames() []string {
	ret := make([]string, 0, len(c.names))
	for name := range c.names {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}
