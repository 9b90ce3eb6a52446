package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// unsafeChars matches everything outside letters, digits, CJK, underscore
// and hyphen.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\x{4e00}-\x{9fa5}-]`)

// ImageFilename derives a filesystem-safe PNG filename from a card title.
// A millisecond timestamp keeps repeated exports of the same card from
// colliding.
func ImageFilename(title string) string {
	base := unsafeChars.ReplaceAllString(strings.TrimSpace(title), "_")
	if base == "" {
		base = "card"
	}
	return fmt.Sprintf("%s_%d.png", base, time.Now().UnixMilli())
}
