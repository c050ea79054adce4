package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListEnvelopeMiddlePage(t *testing.T) {
	env := NewListEnvelope([]int{1, 2, 3}, 250, 2, 100, "http://api.local/applications/")

	require.NotNil(t, env.Next)
	assert.Equal(t, "http://api.local/applications/?page=3&page_size=100", *env.Next)
	require.NotNil(t, env.Previous)
	assert.Equal(t, "http://api.local/applications/?page=1&page_size=100", *env.Previous)
	assert.EqualValues(t, 250, env.Count)
}

func TestNewListEnvelopeLastPage(t *testing.T) {
	env := NewListEnvelope(nil, 237, 3, 100, "http://api.local/applications/")

	assert.Nil(t, env.Next, "next must be null on the final page")
	require.NotNil(t, env.Previous)
}

func TestNewListEnvelopeSinglePage(t *testing.T) {
	env := NewListEnvelope(nil, 5, 1, 100, "http://api.local/applications/")

	assert.Nil(t, env.Next)
	assert.Nil(t, env.Previous)
}

func TestNewListEnvelopeKeepsFilters(t *testing.T) {
	env := NewListEnvelope(nil, 300, 1, 100, "http://api.local/applications/?status=interview")

	require.NotNil(t, env.Next)
	assert.Equal(t, "http://api.local/applications/?status=interview&page=2&page_size=100", *env.Next)
}
