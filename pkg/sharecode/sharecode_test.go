package sharecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	slug := "exampleSlug"
	matchID := "match-1"
	encodedCode := Encode(slug, matchID)
	assert.NotEmpty(t, encodedCode, "Encoded code should not be empty")
}

func TestDecode(t *testing.T) {
	slug := "testSlug"
	matchID := "0645d9e9-0f0f-7aaa-8888-42b5f7d9a321"
	encodedCode := Encode(slug, matchID)

	decodedSlug, decodedMatchID, err := Decode(encodedCode)

	assert.Nil(t, err, "Should not have an error during decoding")
	assert.Equal(t, slug, decodedSlug, "Decoded slug should match the original")
	assert.Equal(t, matchID, decodedMatchID, "Decoded match id should match the original")
}

func TestDecode_ErrorHandling(t *testing.T) {
	_, _, err := Decode("this is not a base64 string")
	assert.NotNil(t, err, "Expected an error for incorrect base64 string")
}
