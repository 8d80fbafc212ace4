package result

import (
	"fmt"
	"strings"
)

const (
	// titleSegments is the number of hyphen-separated segments a title
	// must carry: family, board vendor, board model, boot type,
	// release, config.
	titleSegments = 6

	// systemKeySuffixLen is the length of the trailing date stamp and
	// extension appended after the system key in a title. The
	// benchmark naming convention fixes it at 13 characters.
	systemKeySuffixLen = 13

	// titleDelimiter separates title segments.
	titleDelimiter = "-"
)

// TitleParts is the decomposed form of a document title. Family selects
// the destination table; the remaining fields become row columns.
type TitleParts struct {
	Family   string
	Board    string
	BootType string
	Release  string
	Config   string
}

// ParseTitle validates a document title against the six-segment naming
// contract and decomposes it. The board identifier spans the second and
// third segments.
func ParseTitle(title string) (*TitleParts, error) {
	parts := strings.Split(title, titleDelimiter)
	if len(parts) != titleSegments {
		return nil, &MalformedTitleError{
			Title:  title,
			Reason: fmt.Sprintf("want %d segments, got %d", titleSegments, len(parts)),
		}
	}

	for i, p := range parts {
		if p == "" {
			return nil, &MalformedTitleError{
				Title:  title,
				Reason: fmt.Sprintf("segment %d is empty", i+1),
			}
		}
	}

	return &TitleParts{
		Family:   parts[0],
		Board:    parts[1] + titleDelimiter + parts[2],
		BootType: parts[3],
		Release:  parts[4],
		Config:   parts[5],
	}, nil
}

// SystemKey derives the key into the systems map by stripping the
// fixed-length suffix from the title.
func SystemKey(title string) (string, error) {
	if len(title) <= systemKeySuffixLen {
		return "", &MalformedTitleError{
			Title:  title,
			Reason: fmt.Sprintf("shorter than the %d-character suffix", systemKeySuffixLen),
		}
	}

	return title[:len(title)-systemKeySuffixLen], nil
}
