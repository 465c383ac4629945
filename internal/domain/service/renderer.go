package service

// MarkdownRenderer turns a lesson document into safe HTML.
type MarkdownRenderer interface {
	Render(markdown []byte) (string, error)
}
