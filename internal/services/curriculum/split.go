package curriculum

import (
	"regexp"
	"strings"
)

var (
	guideMarker   = regexp.MustCompile(`(?m)^## PART B\s*[—–-]+\s*TEXT GUIDE`)
	scriptHeading = "# MODULE"
)

// Split separates a lesson into its video script (part A) and text guide (part B).
// Without a part B marker the whole document is the script and the guide is empty.
// The guide stops at a repeated marker.
func Split(doc string) (script, guide string) {
	locs := guideMarker.FindAllStringIndex(doc, 2)
	if locs == nil {
		return demote(doc), ""
	}
	end := len(doc)
	if len(locs) == 2 {
		end = locs[1][0]
	}
	return demote(doc[:locs[0][0]]), "## TEXT GUIDE " + doc[locs[0][1]:end]
}

func demote(s string) string {
	return strings.Replace(s, scriptHeading, "#"+scriptHeading, 1)
}
