package domain

// ChapterStatus tracks verse population of a chapter row.
type ChapterStatus string

const (
	ChapterStatusNotPopulated ChapterStatus = "NOT_POPULATED"
	ChapterStatusPopulating   ChapterStatus = "POPULATING"
	ChapterStatusPopulated    ChapterStatus = "POPULATED"
)

func (s ChapterStatus) String() string { return string(s) }

func (s ChapterStatus) IsValid() bool {
	switch s {
	case ChapterStatusNotPopulated, ChapterStatusPopulating, ChapterStatusPopulated:
		return true
	}
	return false
}

// NeedsPopulation reports whether a read should run the verse population loop.
// POPULATING is included: a row left in that state belongs to a pass that died
// mid-way, live passes are coalesced before the row is read.
func (s ChapterStatus) NeedsPopulation() bool {
	return s != ChapterStatusPopulated
}
