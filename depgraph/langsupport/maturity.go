package langsupport

import "fmt"

// MaturityLevel describes how far import extraction for a language can be
// trusted when deciding what ships with a function.
type MaturityLevel int

const (
	MaturityUntested MaturityLevel = iota
	MaturityBasicTests
	MaturityActivelyTested
	MaturityStable
)

var maturityNames = map[MaturityLevel]struct {
	display string
	symbol  string
}{
	MaturityUntested:       {"Untested", "○"},
	MaturityBasicTests:     {"Basic Tests", "◐"},
	MaturityActivelyTested: {"Actively Tested", "●"},
	MaturityStable:         {"Stable", "✓"},
}

// DisplayName returns the human readable level name.
func (level MaturityLevel) DisplayName() string {
	if names, ok := maturityNames[level]; ok {
		return names.display
	}
	return "Unknown"
}

// Symbol returns the one-character marker shown next to a language.
func (level MaturityLevel) Symbol() string {
	if names, ok := maturityNames[level]; ok {
		return names.symbol
	}
	return "?"
}

func (level MaturityLevel) String() string {
	return fmt.Sprintf("%s %s", level.Symbol(), level.DisplayName())
}

// MaturityLevels returns the ordered set of known maturity levels.
func MaturityLevels() []MaturityLevel {
	return []MaturityLevel{
		MaturityUntested,
		MaturityBasicTests,
		MaturityActivelyTested,
		MaturityStable,
	}
}
