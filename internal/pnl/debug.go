package pnl

// Sample caps keep the debug payload bounded whatever the sheet size.
const (
	maxSampleValues   = 20
	maxUnmatched      = 25
	maxWarningSamples = 10
	maxErrorSamples   = 10
)

// Debug is returned with every sync result. The sheet layout is edited by
// hand, so drift has to be diagnosable from the response alone.
type Debug struct {
	HeaderRow    int                 `json:"header_row"`
	ScannedCells [][]string          `json:"scanned_cells,omitempty"`
	Columns      []MonthColumn       `json:"columns,omitempty"`
	Transitions  []SectionTransition `json:"section_transitions"`
	Unmatched    []UnmatchedLabel    `json:"unmatched,omitempty"`
	Samples      []SampleValue       `json:"samples,omitempty"`
	Warnings     []RowWarning        `json:"warnings,omitempty"`
	WarningCount int                 `json:"warning_count"`
	RowsScanned  int                 `json:"rows_scanned"`
	RowsSkipped  int                 `json:"rows_skipped"`
}

// SectionTransition logs a row that switched the running section.
type SectionTransition struct {
	Row  int     `json:"row"`
	From Section `json:"from"`
	To   Section `json:"to"`
}

// UnmatchedLabel is a row with values that were not stored. Note says why
// when a rule recognised the row but deliberately ignored it.
type UnmatchedLabel struct {
	Row        int     `json:"row"`
	Section    Section `json:"section"`
	Label      string  `json:"label"`
	Suggestion string  `json:"suggestion,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// SampleValue shows how one raw cell was read.
type SampleValue struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Raw    string `json:"raw"`
	Parsed string `json:"parsed"`
	Field  Field  `json:"field,omitempty"`
}

func (d *Debug) warn(w RowWarning) {
	d.WarningCount++
	if len(d.Warnings) < maxWarningSamples {
		d.Warnings = append(d.Warnings, w)
	}
}

func (d *Debug) sample(v SampleValue) {
	if len(d.Samples) < maxSampleValues {
		d.Samples = append(d.Samples, v)
	}
}

func (d *Debug) unmatched(u UnmatchedLabel) {
	if len(d.Unmatched) >= maxUnmatched {
		return
	}

	for _, seen := range d.Unmatched {
		if seen.Label == u.Label && seen.Section == u.Section {
			return
		}
	}

	d.Unmatched = append(d.Unmatched, u)
}
