package dispatch

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// stopwords are filler words dropped when deriving a repo name from free
// text, alongside anything two characters or shorter.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"into": true, "that": true, "this": true, "are": true, "was": true,
	"will": true, "can": true, "have": true, "has": true, "create": true,
	"repo": true, "repository": true, "project": true, "website": true,
	"app": true, "application": true, "ideas": true, "build": true,
	"make": true, "please": true,
}

// meaningfulWords lower-cases the input, strips punctuation, splits on
// whitespace, drops stopwords and short words, and keeps at most the first
// three surviving tokens.
func meaningfulWords(input string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(input) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	words := make([]string, 0, 3)
	for _, w := range strings.Fields(b.String()) {
		if len(w) <= 2 || stopwords[w] {
			continue
		}
		words = append(words, w)
		if len(words) == 3 {
			break
		}
	}
	return words
}

// deriveRepoName builds a repository name from the user's request text:
// zero surviving tokens yields my-project-<last 4 digits of epoch millis>,
// one token gets an -app suffix, several are hyphen-joined. Capped at 30
// characters either way.
func deriveRepoName(words []string) string {
	var name string
	switch len(words) {
	case 0:
		millis := fmt.Sprintf("%d", time.Now().UnixMilli())
		name = "my-project-" + millis[len(millis)-4:]
	case 1:
		name = words[0] + "-app"
	default:
		name = strings.Join(words, "-")
	}
	if len(name) > 30 {
		name = name[:30]
	}
	return name
}

// deriveDescription capitalizes the tokens and appends "project".
func deriveDescription(words []string) string {
	if len(words) == 0 {
		return "My project"
	}
	caps := make([]string, len(words))
	for i, w := range words {
		caps[i] = capitalize(w)
	}
	return strings.Join(caps, " ") + " project"
}

// deriveReadme renders a minimal README from the derived name and
// description.
func deriveReadme(repoName, description string) string {
	parts := strings.Split(repoName, "-")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	title := strings.Join(parts, " ")
	return fmt.Sprintf("# %s\n\n%s\n\nGenerated with Project Next 🚀", title, description)
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
