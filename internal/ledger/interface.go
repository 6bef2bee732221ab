package ledger

// Ledger tracks which absolute file paths have already been transcribed.
// Implementations must survive process restarts.
type Ledger interface {
	Contains(path string) bool
	MarkProcessed(path string) error
	Len() int
	Paths() []string
}
