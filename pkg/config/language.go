package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// Language identifies the syntax used to highlight the source text.
type Language string

// Supported languages, in the order the language picker lists them.
const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Java       Language = "java"
	C          Language = "c"
	Cpp        Language = "cpp"
	CSharp     Language = "csharp"
	Go         Language = "go"
	Rust       Language = "rust"
	Ruby       Language = "ruby"
	PHP        Language = "php"
	Swift      Language = "swift"
	Kotlin     Language = "kotlin"
	Scala      Language = "scala"
	HTML       Language = "html"
	CSS        Language = "css"
	JSON       Language = "json"
	YAML       Language = "yaml"
	Markdown   Language = "markdown"
	Bash       Language = "bash"
	SQL        Language = "sql"
)

var languages = []Language{
	JavaScript, TypeScript, Python, Java, C, Cpp, CSharp, Go, Rust, Ruby, PHP,
	Swift, Kotlin, Scala, HTML, CSS, JSON, YAML, Markdown, Bash, SQL,
}

// Languages returns all supported languages in picker order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// ParseLanguage resolves a language tag case-insensitively.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", errors.New(errors.ErrCodeInvalidLanguage, "unsupported language: %q", s)
	}
	return l, nil
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	for _, v := range languages {
		if v == l {
			return true
		}
	}
	return false
}

// DisplayName returns the tag with its first letter capitalized.
func (l Language) DisplayName() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// String implements fmt.Stringer.
func (l Language) String() string { return string(l) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(b []byte) error {
	v, err := ParseLanguage(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

var extLanguages = map[string]Language{
	".js": JavaScript, ".mjs": JavaScript, ".cjs": JavaScript, ".jsx": JavaScript,
	".ts": TypeScript, ".tsx": TypeScript,
	".py":   Python,
	".java": Java,
	".c":    C, ".h": C,
	".cc": Cpp, ".cpp": Cpp, ".cxx": Cpp, ".hpp": Cpp, ".hh": Cpp,
	".cs":    CSharp,
	".go":    Go,
	".rs":    Rust,
	".rb":    Ruby,
	".php":   PHP,
	".swift": Swift,
	".kt":    Kotlin, ".kts": Kotlin,
	".scala": Scala,
	".html":  HTML, ".htm": HTML,
	".css":  CSS,
	".json": JSON,
	".yaml": YAML, ".yml": YAML,
	".md": Markdown, ".markdown": Markdown,
	".sh": Bash, ".bash": Bash, ".zsh": Bash,
	".sql": SQL,
}

// LanguageForFile infers a language from the extension of name.
func LanguageForFile(name string) (Language, bool) {
	l, ok := extLanguages[strings.ToLower(filepath.Ext(name))]
	return l, ok
}

// Extensions returns the file extensions mapped to l, sorted.
func Extensions(l Language) []string {
	var exts []string
	for ext, lang := range extLanguages {
		if lang == l {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
