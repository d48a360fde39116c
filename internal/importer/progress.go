package importer

// ProgressReporter provides callbacks for reporting import progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnScanStart is called before the pre-pass over the file.
	OnScanStart()

	// OnScanStep is called once per physical line of the pre-pass.
	OnScanStep()

	// SetTotal is called once before the main pass with the number of
	// logical lines it will step through.
	SetTotal(lines int)

	// Step is called once per logical line of the main pass.
	Step()

	// OnRepairStart is called when the cross-reference repair pass begins.
	OnRepairStart()

	// OnComplete is called when the import committed.
	OnComplete(report *Report)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnScanStart()              {}
func (n *NoOpProgressReporter) OnScanStep()               {}
func (n *NoOpProgressReporter) SetTotal(lines int)        {}
func (n *NoOpProgressReporter) Step()                     {}
func (n *NoOpProgressReporter) OnRepairStart()            {}
func (n *NoOpProgressReporter) OnComplete(report *Report) {}
