package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const wellfoundResultsHTML = `
<html><body>
<div class="job-listing">
  <h4>Head of Product</h4>
  <a href="/jobs/999-head-of-product">apply</a>
  <h2>Pied Piper</h2>
  <span class="location">Remote</span>
</div>
<div class="job-listing">
  <h4>Senior Product Manager</h4>
  <a href="/jobs/998-senior-pm">apply</a>
  <h2>Hooli</h2>
</div>
</body></html>`

func Test_Wellfound_KeepsOnlySeniorProductTitles(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(htmlResponse(200, wellfoundResultsHTML)).Once()

	client := NewClient(0)
	client.SetHTTPClient(mockClient)

	postings, err := NewWellfound(client).Fetch(context.Background())
	assert.NoError(err)

	assert.Len(postings, 1)
	assert.Equal("Head of Product", postings[0].Title)
	assert.Equal("Pied Piper", postings[0].Company)
	assert.Equal("https://wellfound.com/jobs/999-head-of-product", postings[0].URL)
	assert.Equal("Remote", postings[0].Location)
	assert.Equal("wellfound", postings[0].Source)
}

func Test_IsSeniorProductTitle(t *testing.T) {

	assert := assert.New(t)

	assert.True(isSeniorProductTitle("Chief Product Officer"))
	assert.True(isSeniorProductTitle("VP of Product"))
	assert.True(isSeniorProductTitle("head of product"))
	assert.False(isSeniorProductTitle("Senior Product Manager"))
	assert.False(isSeniorProductTitle("Software Engineer"))
}

func Test_Aboveboard_JsRenderedSiteIsNotAnError(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(htmlResponse(404, "not found")).Once()

	client := NewClient(0)
	client.SetHTTPClient(mockClient)

	postings, err := NewAboveboard(client).Fetch(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, postings)
}
