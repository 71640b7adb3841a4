package membership

import "regexp"

const (
	personalIdentifierPatternConstant = `^[a-z][a-z0-9]{0,7}$`
)

var personalIdentifierExpression = regexp.MustCompile(personalIdentifierPatternConstant)

// IsPersonalIdentifier reports whether the candidate matches the personal
// account identifier namespace: a lowercase letter followed by up to seven
// lowercase letters or digits. Service and group identifiers fall outside
// this namespace and are rejected, as is any candidate carrying surrounding
// whitespace.
func IsPersonalIdentifier(candidate string) bool {
	return personalIdentifierExpression.MatchString(candidate)
}
