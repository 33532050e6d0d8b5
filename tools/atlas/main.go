package main

import (
	"fmt"
	"io"
	"os"

	"ariga.io/atlas-provider-gorm/gormschema"

	"gavel/models"
)

// 將 gorm model 轉為 SQL schema 供 atlas 計算 migration
func main() {
	statements, err := gormschema.New("postgres").Load(&models.Item{}, &models.Counter{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, statements)
}
