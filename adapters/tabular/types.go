package tabular

// RawTable is a file's contents before interpretation: ordered headers and
// string cell rows, padded to header width.
type RawTable struct {
	Headers []string
	Rows    [][]string
}
