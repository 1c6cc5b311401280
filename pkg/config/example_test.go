package config_test

import (
	"fmt"

	"github.com/matzehuels/codeshot/pkg/config"
)

func ExampleParseTheme() {
	// Slugs and display names are both accepted
	for _, s := range []string{"atom-dark", "Visual Studio"} {
		t, err := config.ParseTheme(s)
		fmt.Println(t.DisplayName(), err)
	}

	_, err := config.ParseTheme("neon")
	fmt.Println(err)
	// Output:
	// Atom Dark <nil>
	// Visual Studio <nil>
	// INVALID_THEME: unknown theme: "neon"
}

func ExampleLanguageForFile() {
	for _, name := range []string{"main.go", "App.TSX", "notes.txt"} {
		lang, ok := config.LanguageForFile(name)
		fmt.Println(name, lang, ok)
	}
	// Output:
	// main.go go true
	// App.TSX typescript true
	// notes.txt  false
}
