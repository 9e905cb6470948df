package pack

import "testing"

func TestSheetPartName(t *testing.T) {
	if got := SheetPartName(3); got != "xl/worksheets/sheet3.xml" {
		t.Fatalf("SheetPartName(3) = %q", got)
	}
	if got := SheetRelsPartName(12); got != "xl/worksheets/_rels/sheet12.xml.rels" {
		t.Fatalf("SheetRelsPartName(12) = %q", got)
	}
}

func TestParseSheetIndex(t *testing.T) {
	cases := []struct {
		name  string
		count int
		want  int
		ok    bool
	}{
		{"xl/worksheets/sheet1.xml", 3, 1, true},
		{"xl/worksheets/sheet3.xml", 3, 3, true},
		{"xl/worksheets/sheet4.xml", 3, 0, false},
		{"xl/worksheets/sheet0.xml", 3, 0, false},
		{"xl/worksheets/sheet01.xml", 3, 0, false},
		{"xl/worksheets/sheet+1.xml", 3, 0, false},
		{"xl/worksheets/sheet.xml", 3, 0, false},
		{"xl/worksheets/sheet1.XML", 3, 0, false},
		{"worksheets/sheet1.xml", 3, 0, false},
	}
	for _, tc := range cases {
		got, err := parseSheetIndex(tc.name, sheetPartPrefix, sheetPartSuffix, tc.count)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("parseSheetIndex(%q) = %d, %v; want %d", tc.name, got, err, tc.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("parseSheetIndex(%q) succeeded, want error", tc.name)
		}
	}
}
