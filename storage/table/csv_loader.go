package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/storage/page"
	"github.com/ryogrid/SamehadaSMJ/storage/tuple"
	"github.com/ryogrid/SamehadaSMJ/types"
)

// LoadData reads the csv file of the table. first line is the header.
// a missing file is logged and leaves the table empty. a line which has wrong
// number of columns is logged and skipped.
func (t *Table) LoadData() error {
	file, err := os.Open(t.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			common.ShPrintf(common.ERROR, "File %s not found.\n", t.filePath)
			return nil
		}
		return fmt.Errorf("open %s: %w", t.filePath, err)
	}
	defer file.Close()

	return t.load(file)
}

func (t *Table) load(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header of %s: %w", t.name, err)
	}
	columns := make([]string, len(header))
	for ii, col := range header {
		columns[ii] = strings.TrimSpace(col)
	}
	t.schema = NewSchema(columns)
	t.pages = make([]*page.Page, 0)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				common.ShPrintf(common.ERROR, "Line %d of %s can not be parsed: %v\n", parseErr.StartLine, t.name, parseErr.Err)
				continue
			}
			return fmt.Errorf("read %s: %w", t.name, err)
		}

		if len(record) != len(columns) {
			line, _ := reader.FieldPos(0)
			common.ShPrintf(common.ERROR, "Line %d has an incorrect number of columns.\n", line)
			continue
		}

		tuple_ := tuple.NewTuple()
		for ii, field := range record {
			tuple_.SetValue(columns[ii], types.NewValueFromString(strings.TrimSpace(field)))
		}
		t.InsertTuple(tuple_)
	}

	return nil
}

// SaveData writes the table to its csv file in schema order
func (t *Table) SaveData() error {
	file, err := os.Create(t.filePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", t.filePath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	columns := t.schema.ColumnNames()
	if len(columns) > 0 {
		if err := writer.Write(columns); err != nil {
			return err
		}
	}
	for _, tuple_ := range t.GetTuples() {
		if err := writer.Write(tuple_.ValuesOf(columns)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
