package similarity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/madhubv/doc-scanner/internal/model"
)

func doc(id, content string) model.Document {
	return model.Document{ID: id, Title: id, Content: content, CreatedAt: time.Now().UTC()}
}

func TestMatch(t *testing.T) {
	t.Run("empty corpus returns empty result", func(t *testing.T) {
		got := Match(Normalize("hello world"), nil, DefaultThreshold, DefaultTopK)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("nothing above threshold returns empty result", func(t *testing.T) {
		corpus := []model.Document{doc("a", "entirely unrelated content")}

		got := Match(Normalize("hello world"), corpus, DefaultThreshold, DefaultTopK)

		assert.Empty(t, got)
	})

	t.Run("exactly at threshold is excluded", func(t *testing.T) {
		// {shared} vs {shared other}: 1/2 = 0.5 exactly
		corpus := []model.Document{doc("a", "shared other")}

		got := Match(Normalize("shared"), corpus, 0.5, DefaultTopK)

		assert.Empty(t, got)
	})

	t.Run("ranks descending by similarity", func(t *testing.T) {
		candidate := Normalize("one two three four")
		corpus := []model.Document{
			doc("low", "one five six seven"),
			doc("high", "one two three four"),
			doc("mid", "one two three nine"),
		}

		got := Match(candidate, corpus, DefaultThreshold, DefaultTopK)

		assert.Len(t, got, 3)
		assert.Equal(t, "high", got[0].DocumentID)
		assert.Equal(t, "mid", got[1].DocumentID)
		assert.Equal(t, "low", got[2].DocumentID)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Similarity, got[i].Similarity)
		}
	})

	t.Run("equal scores keep corpus insertion order", func(t *testing.T) {
		candidate := Normalize("one two")
		// Both score exactly 0.5 against the candidate.
		corpus := []model.Document{
			doc("x", "one two three four"),
			doc("y", "one two five six"),
		}

		got := Match(candidate, corpus, DefaultThreshold, DefaultTopK)

		assert.Len(t, got, 2)
		assert.Equal(t, 0.5, got[0].Similarity)
		assert.Equal(t, 0.5, got[1].Similarity)
		assert.Equal(t, "x", got[0].DocumentID)
		assert.Equal(t, "y", got[1].DocumentID)
	})

	t.Run("truncates to topK", func(t *testing.T) {
		candidate := Normalize("one two three")
		corpus := make([]model.Document, 0, 8)
		for i := 0; i < 8; i++ {
			corpus = append(corpus, doc(fmt.Sprintf("d%d", i), "one two three"))
		}

		got := Match(candidate, corpus, DefaultThreshold, DefaultTopK)

		assert.Len(t, got, DefaultTopK)
	})

	t.Run("result carries document metadata and score bounds", func(t *testing.T) {
		corpus := []model.Document{doc("a", "the cat sat on the mat")}

		got := Match(Normalize("the cat sat on the rug"), corpus, DefaultThreshold, DefaultTopK)

		assert.Len(t, got, 1)
		assert.Equal(t, "a", got[0].DocumentID)
		assert.Equal(t, "a", got[0].Title)
		assert.InDelta(t, 4.0/6.0, got[0].Similarity, 1e-9)
		assert.Greater(t, got[0].Similarity, DefaultThreshold)
		assert.LessOrEqual(t, got[0].Similarity, 1.0)
	})
}
