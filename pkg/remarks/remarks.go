// Package remarks maintains the append-only remark logs carried by several
// entities. A remark is never edited in place; new text is stamped and
// appended below the existing log.
package remarks

import (
	"fmt"
	"strings"
	"time"
)

const stampLayout = "2006-01-02 15:04"

// Append adds a stamped remark to an existing log. Empty text leaves the log
// untouched.
func Append(existing, text, username string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return existing
	}
	entry := fmt.Sprintf("%s [%s]: %s", time.Now().UTC().Format(stampLayout), username, text)
	if existing == "" {
		return entry
	}
	return existing + "\n" + entry
}
