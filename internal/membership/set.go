package membership

import "sort"

// MemberSet is an unordered collection of unique member identifiers.
type MemberSet map[string]struct{}

// NewMemberSet builds a MemberSet from the supplied identifiers, collapsing duplicates.
func NewMemberSet(memberIdentifiers ...string) MemberSet {
	memberSet := make(MemberSet, len(memberIdentifiers))
	for _, memberIdentifier := range memberIdentifiers {
		memberSet.Add(memberIdentifier)
	}
	return memberSet
}

// Add inserts the member identifier into the set.
func (memberSet MemberSet) Add(memberIdentifier string) {
	memberSet[memberIdentifier] = struct{}{}
}

// Contains reports whether the member identifier is present in the set.
func (memberSet MemberSet) Contains(memberIdentifier string) bool {
	_, memberPresent := memberSet[memberIdentifier]
	return memberPresent
}

// Size returns the number of member identifiers in the set.
func (memberSet MemberSet) Size() int {
	return len(memberSet)
}

// Equal reports whether both sets hold exactly the same member identifiers.
func (memberSet MemberSet) Equal(otherSet MemberSet) bool {
	if len(memberSet) != len(otherSet) {
		return false
	}
	for memberIdentifier := range memberSet {
		if !otherSet.Contains(memberIdentifier) {
			return false
		}
	}
	return true
}

// SortedMembers returns the member identifiers in lexicographic order.
func (memberSet MemberSet) SortedMembers() []string {
	sortedMembers := make([]string, 0, len(memberSet))
	for memberIdentifier := range memberSet {
		sortedMembers = append(sortedMembers, memberIdentifier)
	}
	sort.Strings(sortedMembers)
	return sortedMembers
}
