package membership

// Delta captures the member identifiers that separate two membership snapshots.
type Delta struct {
	ToAdd    []string
	ToRemove []string
}

// IsEmpty reports whether the delta requires no mutations.
func (delta Delta) IsEmpty() bool {
	return len(delta.ToAdd) == 0 && len(delta.ToRemove) == 0
}

// Diff computes the delta that transforms localMembers into remoteMembers:
// ToAdd holds members present remotely but not locally, ToRemove holds members
// present locally but not remotely. Both slices are sorted for deterministic
// processing and reporting.
func Diff(remoteMembers MemberSet, localMembers MemberSet) Delta {
	membersToAdd := make([]string, 0)
	for _, remoteMember := range remoteMembers.SortedMembers() {
		if !localMembers.Contains(remoteMember) {
			membersToAdd = append(membersToAdd, remoteMember)
		}
	}

	membersToRemove := make([]string, 0)
	for _, localMember := range localMembers.SortedMembers() {
		if !remoteMembers.Contains(localMember) {
			membersToRemove = append(membersToRemove, localMember)
		}
	}

	return Delta{ToAdd: membersToAdd, ToRemove: membersToRemove}
}
