// Command mktemplate writes the strict import templates for the
// five reference tables into the given directory (default: current).
// Usage: go run cmd/mktemplate/main.go [dir]
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/youssef7511/AVCNA/internal/excel"
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("mkdir %s: %v", dir, err)
	}

	write(dir, "template_dci.xlsx", "dci", excel.DciCodec())
	write(dir, "template_familles.xlsx", "familles", excel.FamilyCodec())
	write(dir, "template_labos.xlsx", "labos", excel.LaboCodec())
	write(dir, "template_formes.xlsx", "formes", excel.FormeCodec())
	write(dir, "template_voies.xlsx", "voies", excel.VoieCodec())
}

func write[T any](dir, name, sheet string, codec *excel.Codec[T]) {
	path := filepath.Join(dir, name)
	if err := excel.ExportFile[T](nil, path, sheet, codec); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	fmt.Println(path)
}
