package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// MarkerPrefix starts every internal note the auto-responder leaves behind.
// The note body is the prefix, one space, then the Unix time in seconds.
const MarkerPrefix = "Out of office autoresponder:"

var (
	// ErrNoTimestamp is returned when a note has no text to take a timestamp from
	ErrNoTimestamp = errors.New("note has no trailing timestamp")
	// ErrInvalidTimestamp is returned when the trailing token is not a Unix time
	ErrInvalidTimestamp = errors.New("note timestamp is not an integer")
)

// MarkerNote builds the internal note body recording an auto-reply at t
func MarkerNote(marker string, t time.Time) string {
	return marker + " " + strconv.FormatInt(t.Unix(), 10)
}

// HasMarker reports whether the raw note body contains the marker
func HasMarker(body, marker string) bool {
	return marker != "" && strings.Contains(body, marker)
}

// NoteText strips markup from a note body and returns its text nodes
// concatenated in document order, with entities decoded.
func NoteText(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way we keep what was read
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// ParseMarkerTimestamp reads the Unix timestamp that ends a marker note.
// The body is reduced to plain text, split on whitespace and the last token parsed.
func ParseMarkerTimestamp(body string) (time.Time, error) {
	fields := strings.Fields(NoteText(body))
	if len(fields) == 0 {
		return time.Time{}, ErrNoTimestamp
	}
	last := fields[len(fields)-1]
	ts, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, last)
	}
	return time.Unix(ts, 0), nil
}
