package patch

import "testing"

func TestToRow_FullMapping(t *testing.T) {
	hit := Hit{
		ID:                   "4711",
		Title:                "Security update for openssl",
		IssuedAt:             "2025-06-01T00:00:00Z",
		ProductFriendlyNames: StringList{"SLES 12 SP5 LTSS", "SLES 15"},
		ProductArchitectures: StringList{"x86_64"},
		Severity:             "critical",
		DetailIBSID:          "98765",
		DetailDescription:    "CVE-2025-0001",
	}

	row := ToRow(hit)

	if row.Severity != "critical" {
		t.Errorf("unexpected Severity: %q", row.Severity)
	}
	if row.PatchName != "Security update for openssl" {
		t.Errorf("unexpected Patch name: %q", row.PatchName)
	}
	if row.PatchDetail != "98765" {
		t.Errorf("unexpected Patch Detail: %q", row.PatchDetail)
	}
	if row.Products != "SLES 12 SP5 LTSS; SLES 15" {
		t.Errorf("unexpected Product(s): %q", row.Products)
	}
	if row.Arch != "x86_64" {
		t.Errorf("unexpected Arch: %q", row.Arch)
	}
	if row.Release != "2025/06/01" {
		t.Errorf("unexpected Release: %q", row.Release)
	}
	if row.CVEOrIssuesFixed != "CVE-2025-0001" {
		t.Errorf("unexpected CVE or Issues Fixed: %q", row.CVEOrIssuesFixed)
	}
}

func TestToRow_MissingFieldsDegradeToEmpty(t *testing.T) {
	row := ToRow(Hit{Severity: "important"})

	cells := row.Cells()
	if cells[0] != "important" {
		t.Errorf("expected severity cell, got %q", cells[0])
	}
	for i, cell := range cells[1:] {
		if cell != "" {
			t.Errorf("cell %d should be empty for a bare hit, got %q", i+1, cell)
		}
	}
}

func TestCells_MatchColumnOrder(t *testing.T) {
	if len(Columns) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(Columns))
	}

	row := Row{
		Severity:         "Severity",
		PatchName:        "Patch name",
		PatchDetail:      "Patch Detail",
		Products:         "Product(s)",
		Arch:             "Arch",
		Release:          "Release",
		CVEOrIssuesFixed: "CVE or Issues Fixed",
	}

	for i, cell := range row.Cells() {
		if cell != Columns[i] {
			t.Errorf("cell %d = %q, want column %q", i, cell, Columns[i])
		}
	}
}
