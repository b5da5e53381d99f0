package share

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkForKnownPlatforms(t *testing.T) {
	c := Content{
		URL:   "https://54links.com/needs/n1",
		Title: "Customs broker needed",
		Quote: "Urgent: clearing goods in Mombasa",
	}

	for _, target := range Targets {
		link := LinkFor(target.Platform, c)
		assert.NotEmpty(t, link, target.Platform)
		assert.NotContains(t, link, " ", "%s link must be URL-escaped", target.Platform)
	}
}

func TestLinkForEscapesQuery(t *testing.T) {
	c := Content{URL: "https://54links.com/x?a=1&b=2", Title: "A & B"}

	link := LinkFor("twitter", c)
	assert.Contains(t, link, "https%3A%2F%2F54links.com")
	assert.NotContains(t, strings.TrimPrefix(link, "https://twitter.com/intent/tweet?"), "A & B")
}

func TestLinkForUnknownPlatform(t *testing.T) {
	assert.Equal(t, "", LinkFor("myspace", Content{URL: "https://54links.com"}))
}
