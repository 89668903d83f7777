package castgraph_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/castgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAppearances(t *testing.T) {
	t.Parallel()

	t.Run("harvests links under the voice acting sub-section", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n* [[Show Alpha]]\n* [[Show Beta]]\n\n== 別の節 ==\n* [[Other]]\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Equal(t, []string{"Show Alpha", "Show Beta"}, titles)
	})

	t.Run("ignores links outside the section", func(t *testing.T) {
		t.Parallel()

		titles := castgraph.ExtractAppearances("* [[Orphan Item]]")

		assert.Empty(t, titles)
	})

	t.Run("requires a sub-section heading", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 舞台 ===\n* [[Stage Play]]\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Empty(t, titles)
	})

	t.Run("requires the section heading before the sub-section", func(t *testing.T) {
		t.Parallel()

		body := "=== 声優 ===\n* [[Show Alpha]]\n== 出演 ==\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Empty(t, titles)
	})

	t.Run("accepts the TV anime and theatrical anime sub-sections", func(t *testing.T) {
		t.Parallel()

		tv := castgraph.ExtractAppearances("== 出演 ==\n=== テレビアニメ ===\n* [[TV Show]]\n")
		film := castgraph.ExtractAppearances("== 出演 ==\n=== 劇場アニメ ===\n* [[Film]]\n")

		assert.Equal(t, []string{"TV Show"}, tv)
		assert.Equal(t, []string{"Film"}, film)
	})

	t.Run("stops at the first empty line", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n* [[First]]\n\n=== テレビアニメ ===\n* [[Second]]\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Equal(t, []string{"First"}, titles)
	})

	t.Run("empty line right after the sub-section ends harvesting", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n\n* [[Late]]\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Empty(t, titles)
	})

	t.Run("skips non-link lines while harvesting", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n'''2010年'''\n* [[Kept]]\n** [[Nested]]\n*[[NoSpace]]\n* plain text\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Equal(t, []string{"Kept", "Nested"}, titles)
	})

	t.Run("captures up to the first closing brackets", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n* [[Show]]（主人公） - [[Other]]\n* [[Target|Shown]]\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Equal(t, []string{"Show", "Target|Shown"}, titles)
	})

	t.Run("deduplicates titles", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n* [[Same]]\n* [[Same]]\n** [[Same]]\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Equal(t, []string{"Same"}, titles)
	})

	t.Run("escapes unsafe characters", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n* [[It's a test/name?]]\n"

		titles := castgraph.ExtractAppearances(body)

		assert.Equal(t, []string{"It&quot;s a test&#047;name&#063;"}, titles)
	})

	t.Run("section markers with no links return an empty result", func(t *testing.T) {
		t.Parallel()

		titles := castgraph.ExtractAppearances("== 出演 ==\n=== 声優 ===\nnothing here\n")

		assert.NotNil(t, titles)
		assert.Empty(t, titles)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		body := "== 出演 ==\n=== 声優 ===\n* [[C]]\n* [[A]]\n* [[B]]\n"

		assert.Equal(t, castgraph.ExtractAppearances(body), castgraph.ExtractAppearances(body))
		assert.Equal(t, []string{"A", "B", "C"}, castgraph.ExtractAppearances(body))
	})
}

func TestEscapeTitle(t *testing.T) {
	t.Parallel()

	t.Run("replaces each unsafe character", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "It&quot;s a test&#047;name&#063;", castgraph.EscapeTitle("It's a test/name?"))
	})

	t.Run("leaves safe titles untouched", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "新世紀エヴァンゲリオン", castgraph.EscapeTitle("新世紀エヴァンゲリオン"))
	})

	t.Run("removes every raw unsafe character in any combination", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"'/?", "?/'", "a''b", "//??", "?'?/'?"} {
			out := castgraph.EscapeTitle(in)
			assert.False(t, strings.ContainsAny(out, "'/?"), "input %q escaped to %q", in, out)
		}
	})
}

func TestAppearanceID(t *testing.T) {
	t.Parallel()

	t.Run("is a 128-bit hex digest", func(t *testing.T) {
		t.Parallel()

		id := castgraph.AppearanceID("Show Alpha")

		require.Len(t, id, 32)
		assert.Equal(t, strings.ToLower(id), id)
	})

	t.Run("is stable for equal titles", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, castgraph.AppearanceID("Show Alpha"), castgraph.AppearanceID("Show Alpha"))
	})

	t.Run("differs for different titles", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, castgraph.AppearanceID("Show Alpha"), castgraph.AppearanceID("Show Beta"))
	})

	t.Run("matches the MD5 of the title", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", castgraph.AppearanceID(""))
	})
}
