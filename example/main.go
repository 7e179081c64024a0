package main

import (
	"fmt"
	"log"
	"time"

	"github.com/dreamph/sheetio"
	"github.com/go-playground/validator/v10"
)

type Order struct {
	Code      string    `excel:"Code" validate:"required"`
	Quantity  int       `validate:"gte=0"`
	Price     *float64  // nil when the cell is empty
	OrderDate time.Time `excel:"OrderDate"`
}

func main() {
	v := validator.New()

	r, err := sheetio.Open(
		"orders.xls", // format is detected from the leading bytes
		sheetio.UseValidator(v),
		sheetio.HeaderReplacement("_"),
	)
	if err != nil {
		log.Fatalf("open error: %v", err)
	}
	defer r.Close()

	names, err := r.Sheets()
	if err != nil {
		log.Fatalf("sheets error: %v", err)
	}
	fmt.Println("sheets:", names)

	// Raw cells: the whole first sheet, empty rows dropped.
	cells, err := r.Cells(sheetio.ByIndex(0), sheetio.Window{})
	if err != nil {
		log.Fatalf("cells error: %v", err)
	}
	fmt.Println("rows:", len(cells))

	// A fixed 3x2 block of strings starting at B2, padded to shape.
	block, err := sheetio.CellsAs[string](r, sheetio.ByName("Orders"), sheetio.Window{
		StartCol: 2, StartRow: 2,
		NumCols: 2, NumRows: 3,
		KeepEmptyRows: true,
	})
	if err != nil {
		log.Fatalf("block error: %v", err)
	}
	for _, row := range block {
		fmt.Println(row)
	}

	// Structs built from the header row.
	orders, err := sheetio.MapRows[Order](r, sheetio.ByName("Orders"), sheetio.Window{})
	if err != nil {
		log.Fatalf("map error: %v", err)
	}
	for i, o := range orders {
		fmt.Printf("%d: %+v\n", i+1, o)
	}
}
