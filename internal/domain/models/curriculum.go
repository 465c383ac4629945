package models

// Link is an external reference attached to a module.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Module is one entry of the course catalog.
type Module struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Concepts    []string `json:"concepts"`
	Links       []Link   `json:"links"`
	Duration    string   `json:"duration"`
	File        string   `json:"file"`
}

// Lesson is a rendered module document with navigation.
// HTML, Script and Guide are sanitized HTML; Script and Guide are the two halves of the document.
type Lesson struct {
	Module   Module `json:"module"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Script   string `json:"script"`
	Guide    string `json:"guide,omitempty"`
	Prev     int    `json:"prev,omitempty"`
	Next     int    `json:"next,omitempty"`
	Fallback bool   `json:"fallback"`
}
