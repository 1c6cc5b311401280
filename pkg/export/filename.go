package export

import (
	"regexp"

	"github.com/matzehuels/codeshot/pkg/config"
)

// DefaultBaseName is used when the display file name is empty.
const DefaultBaseName = "code-snippet"

var extPattern = regexp.MustCompile(`\.[^/.]+$`)

// FileName derives the download name from a display file name: the last
// extension is replaced by the format's.
//
//	FileName("main.go", config.PNG)  // "main.png"
//	FileName("demo.png", config.SVG) // "demo.svg"
//	FileName("", config.PNG)         // "code-snippet.png"
func FileName(base string, format config.Format) string {
	name := extPattern.ReplaceAllString(base, "")
	if name == "" {
		name = DefaultBaseName
	}
	return name + format.Extension()
}
