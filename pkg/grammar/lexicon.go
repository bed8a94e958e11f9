package grammar

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"
)

// Part of speech tags used by the lexicon.
const (
	TagNoun        = "n"
	TagPronoun     = "p"
	TagVerb        = "v"
	TagAdjective   = "j"
	TagArticle     = "a"
	TagAdverb      = "r"
	TagHelper      = "h"
	TagPreposition = "i"
	TagConjunction = "c"
	TagNumber      = "m"
	TagDeterminer  = "d"
	TagUnknown     = "u"
	TagOther       = "x"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// Lexicon maps words to their possible part of speech tags.
type Lexicon struct {
	tags map[string]mapset.Set[string]
}

type lexiconFile struct {
	Words map[string][]string `yaml:"words"`
}

// ParseLexicon decodes a YAML lexicon of the form
//
//	words:
//	  dog: [n, v]
func ParseLexicon(data []byte) (*Lexicon, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	lex := &Lexicon{tags: make(map[string]mapset.Set[string], len(f.Words))}
	for word, tags := range f.Words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" || len(tags) == 0 {
			continue
		}
		set := mapset.NewThreadUnsafeSet[string]()
		for _, t := range tags {
			set.Add(strings.TrimSpace(t))
		}
		lex.tags[word] = set
	}
	if len(lex.tags) == 0 {
		return nil, fmt.Errorf("parse lexicon: no words")
	}
	return lex, nil
}

// LoadLexicon reads a YAML lexicon file. An empty path loads the built-in lexicon.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return ParseLexicon(data)
}

// DefaultLexicon returns the built-in lexicon of common English words.
func DefaultLexicon() (*Lexicon, error) {
	return ParseLexicon(defaultLexicon)
}

// Tags returns the tags of word; unknown words get TagUnknown.
func (l *Lexicon) Tags(word string) mapset.Set[string] {
	if set, ok := l.tags[word]; ok {
		return set
	}
	return mapset.NewThreadUnsafeSet(TagUnknown)
}

// Len returns the number of words in the lexicon.
func (l *Lexicon) Len() int {
	return len(l.tags)
}
