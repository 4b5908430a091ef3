package analysis

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Dictionary lists the known base forms of an inflected word.
type Dictionary interface {
	Lemmas(word string) []string
}

//go:embed verbs.txt
var verbList string

// EnglishVerbs returns the embedded set of English verb base forms.
func EnglishVerbs() map[string]struct{} {
	verbs := make(map[string]struct{})
	for _, w := range strings.Fields(verbList) {
		verbs[w] = struct{}{}
	}
	return verbs
}

// VerbLemmatizer reduces tokens to their verb base form. A token that is
// already a verb base form is kept as is. Irregular forms come from a fixed
// table; regular forms are produced by suffix rules and by the dictionary,
// and a candidate is accepted only when it is a known verb. Tokens with no
// verb reading are returned unchanged.
type VerbLemmatizer struct {
	dict  Dictionary
	verbs map[string]struct{}
}

// NewVerbLemmatizer loads the embedded English dictionary and verb set.
func NewVerbLemmatizer() (*VerbLemmatizer, error) {
	dict, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &VerbLemmatizer{dict: dict, verbs: EnglishVerbs()}, nil
}

// NewVerbLemmatizerWithDictionary uses a caller-supplied dictionary and verb set.
func NewVerbLemmatizerWithDictionary(dict Dictionary, verbs map[string]struct{}) *VerbLemmatizer {
	return &VerbLemmatizer{dict: dict, verbs: verbs}
}

func (l *VerbLemmatizer) Name() string { return "lemma" }

func (l *VerbLemmatizer) Normalize(token string) string {
	if l.isVerb(token) {
		return token
	}
	if base, ok := irregularVerbs[token]; ok {
		return base
	}
	best := ""
	for _, c := range append(verbCandidates(token), l.dict.Lemmas(token)...) {
		if c == token || !l.isVerb(c) {
			continue
		}
		// shortest lemma wins, earlier candidates win ties
		if best == "" || len(c) < len(best) {
			best = c
		}
	}
	if best == "" {
		return token
	}
	return best
}

func (l *VerbLemmatizer) isVerb(word string) bool {
	_, ok := l.verbs[word]
	return ok
}

type suffixRule struct {
	suffix, replacement string
}

// verbRules are tried in order.
var verbRules = []suffixRule{
	{"s", ""},
	{"ies", "y"},
	{"es", "e"},
	{"es", ""},
	{"ed", "e"},
	{"ed", ""},
	{"ing", "e"},
	{"ing", ""},
}

func verbCandidates(token string) []string {
	var out []string
	for _, r := range verbRules {
		if !strings.HasSuffix(token, r.suffix) || len(token) <= len(r.suffix)+1 {
			continue
		}
		stem := token[:len(token)-len(r.suffix)]
		out = append(out, stem+r.replacement)
		// running -> runn -> run, stopped -> stopp -> stop
		if r.replacement == "" && (r.suffix == "ing" || r.suffix == "ed") && doubledConsonant(stem) {
			out = append(out, stem[:len(stem)-1])
		}
	}
	return out
}

func doubledConsonant(s string) bool {
	n := len(s)
	if n < 3 || s[n-1] != s[n-2] {
		return false
	}
	return !strings.ContainsRune("aeiou", rune(s[n-1]))
}

var irregularVerbs = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do", "doing": "do",
	"went": "go", "gone": "go", "goes": "go",
	"made": "make", "said": "say", "seen": "see",
	"took": "take", "taken": "take", "got": "get", "gotten": "get",
	"came": "come", "knew": "know", "known": "know",
	"thought": "think", "told": "tell", "gave": "give", "given": "give",
	"left": "leave", "kept": "keep", "began": "begin", "begun": "begin",
	"brought": "bring", "bought": "buy", "wrote": "write", "written": "write",
	"ran": "run", "sat": "sit", "stood": "stand", "held": "hold", "heard": "hear",
	"met": "meet", "paid": "pay", "sent": "send", "spent": "spend", "built": "build",
	"lost": "lose", "meant": "mean", "led": "lead", "understood": "understand",
	"spoke": "speak", "spoken": "speak", "broke": "break", "broken": "break",
	"chose": "choose", "chosen": "choose", "fallen": "fall",
	"drove": "drive", "driven": "drive", "ate": "eat", "eaten": "eat",
	"forgot": "forget", "forgotten": "forget", "won": "win", "taught": "teach",
	"caught": "catch", "fought": "fight", "sold": "sell", "slept": "sleep",
	"became": "become", "grew": "grow", "grown": "grow", "threw": "throw", "thrown": "throw",
	"wore": "wear", "worn": "wear", "hid": "hide", "hidden": "hide", "shot": "shoot",
	"sang": "sing", "sung": "sing", "swam": "swim", "drank": "drink", "drunk": "drink",
	"flew": "fly", "flown": "fly", "rose": "rise", "risen": "rise", "woke": "wake",
	"dies": "die", "died": "die", "dying": "die", "lying": "lie", "lied": "lie",
}
