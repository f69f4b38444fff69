package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prospector-engine/internal/entities"
)

func posting(title, company, url, source string, score int) entities.Posting {
	return entities.Posting{Title: title, Company: company, URL: url, Source: source, Score: score}
}

func Test_Deduplicate_DistinctPostingsAreUntouched(t *testing.T) {

	postings := []entities.Posting{
		posting("CPO", "Acme", "url1", "linkedin", 80),
		posting("VP Product", "Acme", "url2", "linkedin", 70),
		posting("CPO", "Globex", "url3", "indeed", 60),
	}

	result := Deduplicate(postings)
	assert.Equal(t, postings, result)
}

func Test_Deduplicate_HigherScoreWins(t *testing.T) {

	assert := assert.New(t)

	result := Deduplicate([]entities.Posting{
		posting("CPO", "Test", "url1", "a", 30),
		posting("CPO", "Test", "url2", "b", 90),
	})
	assert.Len(result, 1)
	assert.Equal(90, result[0].Score)
	assert.Equal("url2", result[0].URL)

	result = Deduplicate([]entities.Posting{
		posting("CPO", "Test", "url2", "b", 90),
		posting("CPO", "Test", "url1", "a", 30),
	})
	assert.Len(result, 1)
	assert.Equal(90, result[0].Score)
	assert.Equal("url2", result[0].URL)
}

func Test_Deduplicate_EqualScoresKeepFirstSeen(t *testing.T) {

	result := Deduplicate([]entities.Posting{
		posting("CPO", "Acme", "url1", "linkedin", 80),
		posting("CPO", "Acme", "url2", "indeed", 80),
	})

	assert.Len(t, result, 1)
	assert.Equal(t, "url1", result[0].URL)
}

func Test_Deduplicate_KeyIsCaseInsensitive(t *testing.T) {

	result := Deduplicate([]entities.Posting{
		posting("Chief Product Officer", "ACME", "url1", "a", 70),
		posting("chief product officer", "acme", "url2", "b", 50),
	})

	assert.Len(t, result, 1)
	assert.Equal(t, 70, result[0].Score)
}

func Test_Deduplicate_KeyIgnoresSurroundingWhitespace(t *testing.T) {

	result := Deduplicate([]entities.Posting{
		posting("  CPO  ", " Acme ", "url1", "a", 80),
		posting("CPO", "Acme", "url2", "b", 60),
	})

	assert.Len(t, result, 1)
	assert.Equal(t, 80, result[0].Score)
}

func Test_Deduplicate_PreservesFirstSeenOrder(t *testing.T) {

	result := Deduplicate([]entities.Posting{
		posting("CPO", "Acme", "url1", "a", 10),
		posting("VP Product", "Globex", "url2", "a", 99),
		posting("CPO", "Acme", "url3", "b", 95),
	})

	assert.Len(t, result, 2)
	assert.Equal(t, "acme|cpo", result[0].IdentityKey())
	assert.Equal(t, 95, result[0].Score)
	assert.Equal(t, "globex|vp product", result[1].IdentityKey())
}

func Test_Deduplicate_EmptyInput(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
	assert.Empty(t, Deduplicate([]entities.Posting{}))
}

func Test_Deduplicate_DoesNotMutateInput(t *testing.T) {

	input := []entities.Posting{
		posting("CPO", "Acme", "url1", "a", 30),
		posting("CPO", "Acme", "url2", "b", 90),
	}

	_ = Deduplicate(input)

	assert.Equal(t, "url1", input[0].URL)
	assert.Equal(t, 30, input[0].Score)
}
