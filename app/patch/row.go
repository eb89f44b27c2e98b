package patch

// Columns is the export header, in output order.
var Columns = []string{
	"Severity",
	"Patch name",
	"Patch Detail",
	"Product(s)",
	"Arch",
	"Release",
	"CVE or Issues Fixed",
}

// Row is the final projection of one enriched hit. Derived once, never
// mutated; every value is plain text.
type Row struct {
	Severity         string
	PatchName        string
	PatchDetail      string
	Products         string
	Arch             string
	Release          string
	CVEOrIssuesFixed string
}

// ToRow maps an enriched hit into the fixed output schema. Pure and
// total: missing fields degrade to empty strings.
func ToRow(h Hit) Row {
	return Row{
		Severity:         h.Severity,
		PatchName:        h.Title,
		PatchDetail:      h.DetailIBSID,
		Products:         h.ProductFriendlyNames.Join(),
		Arch:             h.ProductArchitectures.Join(),
		Release:          FormatReleaseDate(h.IssuedAt),
		CVEOrIssuesFixed: h.DetailDescription,
	}
}

// Cells returns the row values in Columns order.
func (r Row) Cells() []string {
	return []string{
		r.Severity,
		r.PatchName,
		r.PatchDetail,
		r.Products,
		r.Arch,
		r.Release,
		r.CVEOrIssuesFixed,
	}
}
