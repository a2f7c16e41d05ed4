package diffutils

// Engine names accepted by Config.Engine.
const (
	EngineNative  = "native"
	EngineGitDiff = "gitdiff"
)

// Config holds user settings. Once loaded at startup it is treated as
// read-only.
type Config struct {
	Engine   string `yaml:"engine"`    // "native" or "gitdiff"
	Theme    string `yaml:"theme"`     // "dark" or "light"
	WordDiff bool   `yaml:"word_diff"` // Highlight changed words in paired lines
	Syntax   bool   `yaml:"syntax"`    // Syntax-highlight context lines
	Cache    bool   `yaml:"cache"`     // Reuse parses of identical patch text

	// Clipboard is the command the viewer pipes copied hunks into, such as
	// "xclip -selection primary". Empty uses the system clipboard.
	Clipboard string `yaml:"clipboard"`

	Log struct {
		File  string `yaml:"file"` // Empty disables logging
		Debug bool   `yaml:"debug"`
	} `yaml:"log"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Engine:   EngineNative,
		Theme:    "dark",
		WordDiff: true,
		Syntax:   true,
	}
}
