package membership_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gwsync/internal/membership"
)

func TestDiffComputesDirectionalDifferences(testInstance *testing.T) {
	testCases := []struct {
		name             string
		remoteMembers    []string
		localMembers     []string
		expectedToAdd    []string
		expectedToRemove []string
	}{
		{
			name:             "equal_sets_produce_empty_delta",
			remoteMembers:    []string{"alice", "bob"},
			localMembers:     []string{"bob", "alice"},
			expectedToAdd:    []string{},
			expectedToRemove: []string{},
		},
		{
			name:             "remote_only_member_is_added",
			remoteMembers:    []string{"alice", "carol"},
			localMembers:     []string{"alice", "bob"},
			expectedToAdd:    []string{"carol"},
			expectedToRemove: []string{"bob"},
		},
		{
			name:             "empty_local_set_adds_everyone",
			remoteMembers:    []string{"carol", "alice", "bob"},
			localMembers:     []string{},
			expectedToAdd:    []string{"alice", "bob", "carol"},
			expectedToRemove: []string{},
		},
		{
			name:             "empty_remote_set_removes_everyone",
			remoteMembers:    []string{},
			localMembers:     []string{"carol", "bob"},
			expectedToAdd:    []string{},
			expectedToRemove: []string{"bob", "carol"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			remoteSet := membership.NewMemberSet(testCase.remoteMembers...)
			localSet := membership.NewMemberSet(testCase.localMembers...)

			delta := membership.Diff(remoteSet, localSet)

			require.Equal(testInstance, testCase.expectedToAdd, delta.ToAdd)
			require.Equal(testInstance, testCase.expectedToRemove, delta.ToRemove)
			require.Equal(testInstance, len(delta.ToAdd) == 0 && len(delta.ToRemove) == 0, delta.IsEmpty())
		})
	}
}

func TestDiffAddAndRemoveSetsAreDisjoint(testInstance *testing.T) {
	remoteSet := membership.NewMemberSet("alice", "bob", "carol", "dave")
	localSet := membership.NewMemberSet("bob", "erin", "frank")

	delta := membership.Diff(remoteSet, localSet)

	additions := membership.NewMemberSet(delta.ToAdd...)
	for _, removedMember := range delta.ToRemove {
		require.False(testInstance, additions.Contains(removedMember))
	}
}

func TestDiffAppliedToLocalSetReproducesRemoteSet(testInstance *testing.T) {
	remoteSet := membership.NewMemberSet("alice", "carol")
	localSet := membership.NewMemberSet("alice", "bob")

	delta := membership.Diff(remoteSet, localSet)

	reconciledSet := membership.NewMemberSet(localSet.SortedMembers()...)
	for _, addedMember := range delta.ToAdd {
		reconciledSet.Add(addedMember)
	}
	for _, removedMember := range delta.ToRemove {
		delete(reconciledSet, removedMember)
	}

	require.True(testInstance, reconciledSet.Equal(remoteSet))
}

func TestNewMemberSetCollapsesDuplicates(testInstance *testing.T) {
	memberSet := membership.NewMemberSet("alice", "alice", "bob")

	require.Equal(testInstance, 2, memberSet.Size())
	require.Equal(testInstance, []string{"alice", "bob"}, memberSet.SortedMembers())
}
