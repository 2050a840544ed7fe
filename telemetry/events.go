package telemetry

// SelectionEvent is one selection.csv row, written whenever a click changes
// the selection.
type SelectionEvent struct {
	Frame  int64   `csv:"frame"`
	Time   float64 `csv:"time_s"`
	Action string  `csv:"action"`
	Index  int     `csv:"index"`
	Author string  `csv:"author"`
	X      float32 `csv:"x"`
	Z      float32 `csv:"z"`
}
