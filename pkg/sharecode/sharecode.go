package sharecode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode builds the join code a display uses to follow a single match without
// typing the tournament slug and match id by hand. Codes travel in URL paths,
// hence the URL-safe alphabet.
func Encode(slug, matchID string) string {
	code := fmt.Sprintf("%s|%s", slug, matchID)
	return base64.RawURLEncoding.EncodeToString([]byte(code))
}

// Decode splits a join code back into tournament slug and match id.
func Decode(code string) (slug, matchID string, err error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
