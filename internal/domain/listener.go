package domain

// BuildListener receives ordered, human-readable progress lines from record
// operations.
type BuildListener interface {
	Println(line string)
}
