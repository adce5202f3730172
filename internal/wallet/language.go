package wallet

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// WordlistSize is the number of words in every BIP-39 wordlist.
const WordlistSize = 2048

// Language identifies a BIP-39 wordlist.
type Language string

// Supported wordlists.
const (
	English            Language = "english"
	ChineseSimplified  Language = "chinese_simplified"
	ChineseTraditional Language = "chinese_traditional"
	Czech              Language = "czech"
	French             Language = "french"
	Italian            Language = "italian"
	Japanese           Language = "japanese"
	Korean             Language = "korean"
	Spanish            Language = "spanish"
)

// DefaultLanguage is used when no language is given.
const DefaultLanguage = English

type languageInfo struct {
	name  string
	label string
	words []string
}

var languageTable = map[Language]languageInfo{
	English:            {"English", "English", wordlists.English},
	ChineseSimplified:  {"Chinese Simplified", "简体中文", wordlists.ChineseSimplified},
	ChineseTraditional: {"Chinese Traditional", "繁體中文", wordlists.ChineseTraditional},
	Czech:              {"Czech", "Čeština", wordlists.Czech},
	French:             {"French", "Français", wordlists.French},
	Italian:            {"Italian", "Italiano", wordlists.Italian},
	Japanese:           {"Japanese", "日本語", wordlists.Japanese},
	Korean:             {"Korean", "한국어", wordlists.Korean},
	Spanish:            {"Spanish", "Español", wordlists.Spanish},
}

// Languages returns every supported language in a stable order.
func Languages() []Language {
	return []Language{
		English, ChineseSimplified, ChineseTraditional, Czech, French,
		Italian, Japanese, Korean, Spanish,
	}
}

// ParseLanguage resolves a language identifier. Matching is case-insensitive
// and an empty string yields DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage, nil
	}
	lang := Language(s)
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return lang, nil
}

// Valid reports whether the language has a wordlist.
func (l Language) Valid() bool {
	_, ok := languageTable[l]
	return ok
}

// Name returns the English display name.
func (l Language) Name() string {
	return languageTable[l].name
}

// Label returns the display name in the language itself.
func (l Language) Label() string {
	return languageTable[l].label
}

// separator is the word separator used when rendering a phrase.
func (l Language) separator() string {
	if l == Japanese {
		return "　"
	}
	return " "
}

// Words returns a copy of the wordlist for lang.
func Words(lang Language) ([]string, error) {
	info, ok := languageTable[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	out := make([]string, len(info.words))
	copy(out, info.words)
	return out, nil
}

var (
	indexMu sync.Mutex
	indexes = make(map[Language]map[string]int)
)

// wordIndex returns the NFKD word → position map for lang, building it on
// first use.
func wordIndex(lang Language) (map[string]int, error) {
	info, ok := languageTable[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	indexMu.Lock()
	defer indexMu.Unlock()

	if idx, ok := indexes[lang]; ok {
		return idx, nil
	}
	idx := make(map[string]int, len(info.words))
	for i, w := range info.words {
		idx[norm.NFKD.String(w)] = i
	}
	indexes[lang] = idx
	return idx, nil
}
