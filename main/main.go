package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ryogrid/SamehadaSMJ/common"
	"github.com/ryogrid/SamehadaSMJ/report"
	"github.com/ryogrid/SamehadaSMJ/samehada"
	"github.com/ryogrid/SamehadaSMJ/storage/table"
)

// loads wine relations, joins them and writes results under common.OutDir
func main() {
	c := table.NewCatalog(common.DataDir)
	for _, fileName := range []string{"vinho.csv", "uva.csv", "pais.csv"} {
		if _, err := c.LoadTable(fileName); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	vinho := c.GetTableByName("vinho")
	uva := c.GetTableByName("uva")
	pais := c.GetTableByName("pais")

	specs := []samehada.JoinSpec{
		{Name: "Vinho join Uva", Left: vinho, Right: uva, LeftColumn: "uva_id", RightColumn: "uva_id"},
		{Name: "Uva join Vinho", Left: uva, Right: vinho, LeftColumn: "uva_id", RightColumn: "uva_id"},
		{Name: "Uva join Pais", Left: uva, Right: pais, LeftColumn: "pais_origem_id", RightColumn: "pais_id"},
		{Name: "Vinho join Pais", Left: vinho, Right: pais, LeftColumn: "pais_producao_id", RightColumn: "pais_id"},
	}
	results := samehada.RunBatch(specs, func() (*samehada.SamehadaInstance, error) {
		return samehada.NewSamehadaInstance(common.RunStoreKind, common.ScratchDir)
	})

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			fmt.Printf("Error: %s: %v\n", result.Name, result.Err)
			failed++
		}
	}

	if common.ActiveLogKindSetting&common.DEBUG_INFO > 0 {
		for _, result := range results {
			if result.Err == nil {
				fmt.Println(result.Name)
				samehada.PrintExecuteResults(samehada.ConvTupleListToValues(result.Columns(), result.Rows))
			}
		}
	}
	report.PrintJoinSummary(results)

	if err := report.SaveResults(results, common.OutDir); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := report.PlotIOCost(results, filepath.Join(common.OutDir, "io_cost.png")); err != nil {
		common.ShPrintf(common.WARN, "Warning: I/O cost chart is not saved: %v\n", err)
	}

	if failed > 0 {
		fmt.Printf("%d of %d joins failed.\n", failed, len(results))
		os.Exit(1)
	}
	fmt.Println("All operations completed successfully!")
}
