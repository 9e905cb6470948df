package pack

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed part names of the package. Downstream consumers depend on these
// paths byte for byte.
const (
	PartContentTypes  = "[Content_Types].xml"
	PartRootRels      = "_rels/.rels"
	PartDocPropsApp   = "docProps/app.xml"
	PartDocPropsCore  = "docProps/core.xml"
	PartWorkbook      = "xl/workbook.xml"
	PartWorkbookRels  = "xl/_rels/workbook.xml.rels"
	PartTheme         = "xl/theme/theme1.xml"
	PartStyles        = "xl/styles.xml"
	PartSharedStrings = "xl/sharedStrings.xml"

	sheetPartPrefix     = "xl/worksheets/sheet"
	sheetRelsPartPrefix = "xl/worksheets/_rels/sheet"
	sheetPartSuffix     = ".xml"
	sheetRelsPartSuffix = ".xml.rels"
)

// SheetPartName returns the worksheet part name for a 1-based sheet index.
func SheetPartName(index int) string {
	return fmt.Sprintf("%s%d%s", sheetPartPrefix, index, sheetPartSuffix)
}

// SheetRelsPartName returns the relationship part name for a 1-based sheet
// index.
func SheetRelsPartName(index int) string {
	return fmt.Sprintf("%s%d%s", sheetRelsPartPrefix, index, sheetRelsPartSuffix)
}

// parseSheetIndex extracts the 1-based index embedded in a worksheet-family
// part name. The name must round-trip exactly (no leading zeros, no stray
// characters) and the index must fall within [1, sheetCount].
func parseSheetIndex(name, prefix, suffix string, sheetCount int) (int, error) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	digits, ok := strings.CutSuffix(rest, suffix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || digits != strconv.Itoa(n) {
		return 0, fmt.Errorf("%w: %q", ErrBadPartName, name)
	}
	if n > sheetCount {
		return 0, fmt.Errorf("%w: %q: sheet index out of range", ErrBadPartName, name)
	}
	return n, nil
}
