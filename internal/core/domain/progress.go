package domain

// Progress reports coarse extraction progress to the caller.
type Progress struct {
	// File is the name of the file being processed.
	File string

	// Index is the 1-based position of File in the batch.
	Index int

	// Total is the number of files in the batch.
	Total int

	// Stage is the current processing step.
	Stage ProgressStage

	// Percent is the completion of the current stage (0-100), when known.
	Percent float64
}

// ProgressStage names a step of the extraction pipeline.
type ProgressStage string

// Progress stages.
const (
	StageReading   ProgressStage = "reading"
	StageExpanding ProgressStage = "expanding"
	StageOCR       ProgressStage = "ocr"
	StageDone      ProgressStage = "done"
	StageFailed    ProgressStage = "failed"
)

// ProgressFunc receives coarse progress events. It may be nil.
type ProgressFunc func(Progress)

// Report calls f if it is set.
func (f ProgressFunc) Report(p Progress) {
	if f != nil {
		f(p)
	}
}
