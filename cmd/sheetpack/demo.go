package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillsoft/sheetpack/pack"
	"github.com/quillsoft/sheetpack/workbook"
	"github.com/quillsoft/sheetpack/workbook/styles"
)

var demoCmd = &cobra.Command{
	Use:   "demo <output.xlsx>",
	Short: "Write a sample package exercising the document features",
	Long: `Write a small sample spreadsheet showing text, numbers, booleans,
formulas, shared formulas, merged cells, hyperlinks, and cell formats.
Useful as a smoke test of the toolchain and as a feature reference.`,
	Args: cobra.ExactArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	outPath := args[0]

	opts := workbook.DefaultOptions()
	opts.Properties.Title = "sheetpack demo"
	opts.Properties.Creator = "sheetpack"
	wb := workbook.New(opts)

	ws, err := wb.AddSheet("Demo")
	if err != nil {
		return err
	}

	header := styles.DefaultFormat()
	header.Font.Bold = true
	header.Fill = styles.Fill{Pattern: styles.PatternSolid, Color: "FFDDEBF7"}
	hHeader := wb.Styles().AddFormat(header)

	money := styles.DefaultFormat()
	money.NumFmt = "#,##0.00"
	hMoney := wb.Styles().AddFormat(money)

	cols := []string{"Item", "Count", "Price", "Total", "In stock"}
	for c, name := range cols {
		if err := ws.WriteString(0, c, name); err != nil {
			return err
		}
		if err := ws.SetCellFormat(0, c, hHeader); err != nil {
			return err
		}
	}

	items := []struct {
		name    string
		count   float64
		price   float64
		inStock bool
	}{
		{"widget", 12, 2.50, true},
		{"sprocket", 3, 17.25, true},
		{"gizmo", 0, 99.99, false},
	}
	for i, it := range items {
		r := i + 1
		if err := ws.WriteString(r, 0, it.name); err != nil {
			return err
		}
		if err := ws.WriteNumber(r, 1, it.count); err != nil {
			return err
		}
		if err := ws.WriteNumber(r, 2, it.price); err != nil {
			return err
		}
		if err := ws.SetCellFormat(r, 2, hMoney); err != nil {
			return err
		}
		if err := ws.WriteBool(r, 4, it.inStock); err != nil {
			return err
		}
	}

	// One shared formula covers the whole Total column.
	if ws.CreateSharedFormula(1, 3, len(items), 3, "B2*C2") < 0 {
		return fmt.Errorf("shared formula rejected")
	}
	if err := ws.WriteFormula(len(items)+1, 3, "SUM(D2:D4)"); err != nil {
		return err
	}
	if err := ws.SetCellFormat(len(items)+1, 3, hMoney); err != nil {
		return err
	}

	if err := ws.MergeRange(len(items)+2, 0, len(items)+2, 2); err != nil {
		return err
	}
	if err := ws.WriteURL(len(items)+2, 0, "https://example.com/catalog", "Full catalog"); err != nil {
		return err
	}
	if err := ws.SetColWidth(0, 18); err != nil {
		return err
	}

	if err := pack.WriteFile(wb, outPath); err != nil {
		return err
	}
	printInfo("✓ Demo package written: %s\n", outPath)
	return nil
}
