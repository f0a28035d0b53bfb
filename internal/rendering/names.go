package rendering

import (
	"fmt"
	"strings"
)

// Title prefixed to every author in a salutation
const Title = "Dr."

// SplitAuthors splits a raw authors field on delim, dropping blank entries
func SplitAuthors(field, delim string) []string {
	parts := strings.Split(field, delim)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			names = append(names, p)
		}
	}
	return names
}

// DisplayName returns the part of a raw "Surname, Initials" entry before the first comma, trimmed
func DisplayName(raw string) string {
	name, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(name)
}

// FormatNames builds the salutation for a list of authors.
//
//	1 author:  "Dr. A"
//	2 authors: "Dr. A and Dr. B"
//	3 authors: "Dr. A, Dr. B, and Dr. C"
//	more:      "Dr. A, Dr. B, Dr. C, and co-authors"
func FormatNames(names []string) (string, error) {
	n := len(names)
	if n == 0 {
		return "", &EmptyNameListError{}
	}

	d := make([]string, min(n, 3))
	for i := range d {
		d[i] = DisplayName(names[i])
	}

	switch n {
	case 1:
		return fmt.Sprintf("%s %s", Title, d[0]), nil
	case 2:
		return fmt.Sprintf("%s %s and %s %s", Title, d[0], Title, d[1]), nil
	case 3:
		return fmt.Sprintf("%s %s, %s %s, and %s %s", Title, d[0], Title, d[1], Title, d[2]), nil
	default:
		return fmt.Sprintf("%s %s, %s %s, %s %s, and co-authors", Title, d[0], Title, d[1], Title, d[2]), nil
	}
}

// Salutation splits field on delim and formats the result
func Salutation(field, delim string) (string, error) {
	s, err := FormatNames(SplitAuthors(field, delim))
	if err != nil {
		return "", &EmptyNameListError{Field: field}
	}
	return s, nil
}
