package table

// Schema is the ordered list of column names of a relation
type Schema struct {
	columns []string
}

func NewSchema(columns []string) *Schema {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Schema{cols}
}

func (s *Schema) GetColumn(colIndex uint32) string {
	return s.columns[colIndex]
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

// GetColIndex returns -1 when the schema does not have the column
func (s *Schema) GetColIndex(columnName string) int {
	for i := 0; i < len(s.columns); i++ {
		if s.columns[i] == columnName {
			return i
		}
	}
	return -1
}

func (s *Schema) ColumnNames() []string {
	ret := make([]string, len(s.columns))
	copy(ret, s.columns)
	return ret
}
