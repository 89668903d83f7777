package castgraph

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
)

// AppearanceSection is the heading that opens the appearances part of an
// actor article.
const AppearanceSection = "== 出演 =="

// AppearanceSubsections are the sub-headings under AppearanceSection whose
// lists are harvested: voice acting, TV anime and theatrical anime.
var AppearanceSubsections = []string{
	"=== 声優 ===",
	"=== テレビアニメ ===",
	"=== 劇場アニメ ===",
}

var titleRE = regexp.MustCompile(`^\*+ \[\[(.+?)\]\]`)

var titleEscaper = strings.NewReplacer(
	"'", "&quot;",
	"/", "&#047;",
	"?", "&#063;",
)

// EscapeTitle replaces the characters graph stores reject in identifiers
// with fixed entity tokens.
func EscapeTitle(title string) string {
	return titleEscaper.Replace(title)
}

// AppearanceID returns the vertex ID of an appearance: the hex encoded MD5
// digest of its escaped title.
func AppearanceID(title string) string {
	sum := md5.Sum([]byte(title))
	return hex.EncodeToString(sum[:])
}

type extractState int

const (
	seekingSection extractState = iota
	seekingSubsection
	harvesting
	done
)

// extractor walks an article body one line at a time.
type extractor struct {
	state  extractState
	titles map[string]struct{}
}

// step consumes a single line and advances the state machine.
func (x *extractor) step(line string) {
	switch x.state {
	case seekingSection:
		if strings.Contains(line, AppearanceSection) {
			x.state = seekingSubsection
		}
	case seekingSubsection:
		for _, marker := range AppearanceSubsections {
			if strings.Contains(line, marker) {
				x.state = harvesting
				return
			}
		}
	case harvesting:
		if line == "" {
			x.state = done
			return
		}
		if m := titleRE.FindStringSubmatch(line); m != nil {
			x.titles[EscapeTitle(m[1])] = struct{}{}
		}
	}
}

// ExtractAppearances returns the escaped titles linked from the first
// voice acting list under the appearances section of body. The list ends
// at the first empty line. Titles are unique and sorted.
func ExtractAppearances(body string) []string {
	x := &extractor{titles: make(map[string]struct{})}
	for _, line := range strings.Split(body, "\n") {
		x.step(line)
		if x.state == done {
			break
		}
	}

	titles := make([]string, 0, len(x.titles))
	for t := range x.titles {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}
