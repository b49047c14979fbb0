package samehada_util

import (
	"strings"
)

// ResultFileName returns the csv file name for a join name.
// "Vinho join Uva" -> "vinho_join_uva.csv"
func ResultFileName(joinName string) string {
	return strings.ReplaceAll(strings.ToLower(joinName), " ", "_") + ".csv"
}
