package export_test

import (
	"fmt"

	"github.com/matzehuels/codeshot/pkg/config"
	"github.com/matzehuels/codeshot/pkg/export"
)

func ExampleFileName() {
	fmt.Println(export.FileName("demo.png", config.SVG))
	fmt.Println(export.FileName("helloworld.js", config.PNG))
	fmt.Println(export.FileName("archive.tar.gz", config.PNG))

	// An empty base name falls back to the default
	fmt.Println(export.FileName("", config.PNG))
	// Output:
	// demo.svg
	// helloworld.png
	// archive.tar.png
	// code-snippet.png
}

func ExampleDimensions_Scaled() {
	dims := export.Dimensions{Width: 410, Height: 182}
	for _, d := range config.Densities() {
		s := dims.Scaled(d)
		fmt.Printf("%s: %d × %d\n", d, s.Width, s.Height)
	}
	// Output:
	// 1x: 410 × 182
	// 2x: 820 × 364
	// 3x: 1230 × 546
}
