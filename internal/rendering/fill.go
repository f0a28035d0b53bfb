package rendering

import "strings"

// Fill replaces each placeholder in body with its value, one placeholder at a time, in order.
//
// Replacement is literal and chained: the output of step i is the input of step i+1, so a
// value that contains a later placeholder token is itself rewritten by that later step.
// Callers that cannot rule this out can check with Collisions first.
func Fill(body string, placeholders, values []string) (string, error) {
	if len(placeholders) != len(values) {
		return "", &ArityMismatchError{Placeholders: len(placeholders), Values: len(values)}
	}
	for i, token := range placeholders {
		body = strings.ReplaceAll(body, token, values[i])
	}
	return body, nil
}

// Collision records a value that will be re-substituted by a later placeholder
type Collision struct {
	Value       int // index of the value that contains the token
	Placeholder int // index of the later placeholder found inside it
	Token       string
}

// Collisions lists every value that contains the token of a placeholder applied after it
func Collisions(placeholders, values []string) []Collision {
	var found []Collision
	for i := 0; i < len(values) && i < len(placeholders); i++ {
		for j := i + 1; j < len(placeholders); j++ {
			if placeholders[j] != "" && strings.Contains(values[i], placeholders[j]) {
				found = append(found, Collision{Value: i, Placeholder: j, Token: placeholders[j]})
			}
		}
	}
	return found
}

// Residual returns the placeholder tokens still present in body
func Residual(body string, placeholders []string) []string {
	var left []string
	for _, token := range placeholders {
		if token != "" && strings.Contains(body, token) {
			left = append(left, token)
		}
	}
	return left
}
