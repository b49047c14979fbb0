package table

import (
	"os"
	"path/filepath"
	"testing"

	testingpkg "github.com/ryogrid/SamehadaSMJ/testing/testing_assert"
)

func TestCatalogLoadAndLookup(t *testing.T) {
	dir := t.TempDir()
	testingpkg.Ok(t, os.WriteFile(filepath.Join(dir, "uva.csv"), []byte("uva_id,nome\n1,Malbec\n2,Tannat\n"), 0644))

	c := NewCatalog(dir)
	uva, err := c.LoadTable("uva.csv")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 2, uva.TupleCount())
	testingpkg.Assert(t, c.GetTableByName("uva") == uva, "lookup by name failed")
	testingpkg.Assert(t, c.GetTableByOID(0) == uva, "lookup by oid failed")
	testingpkg.Assert(t, c.GetTableByName("vinho") == nil, "unknown table should be nil")

	// missing file is an empty table, not an error
	pais, err := c.LoadTable("pais.csv")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, pais.TupleCount())
	testingpkg.Equals(t, []string{"pais", "uva"}, c.TableNames())

	// same name replaces the table but keeps the oid
	oid := c.RegisterTable(NewTableFromTuples("uva", []string{"uva_id"}, nil))
	testingpkg.Equals(t, uint32(0), oid)
	testingpkg.Equals(t, 0, c.GetTableByName("uva").TupleCount())
}
