package localgroups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gwsync/internal/execshell"
	"github.com/temirov/gwsync/internal/membership"
)

const (
	executorNotConfiguredMessageConstant  = "group command executor not configured"
	localGroupNameRequiredMessageConstant = "local group name must be provided"
	memberNameRequiredMessageConstant     = "member name must be provided"
	getentGroupDatabaseConstant           = "group"
	gpasswdAddFlagConstant                = "-a"
	gpasswdDeleteFlagConstant             = "-d"
	groupRecordFieldSeparatorConstant     = ":"
	groupMemberListSeparatorConstant      = ","
	groupRecordMinimumFieldCountConstant  = 4
	groupRecordMemberFieldIndexConstant   = 3
	groupReadErrorTemplateConstant        = "failed to read local group %q: %w"
	groupRecordMalformedTemplateConstant  = "malformed group record for %q: %q"
	memberAdditionErrorTemplateConstant   = "failed to add %q to group %q: %w"
	memberRemovalErrorTemplateConstant    = "failed to remove %q from group %q: %w"
)

// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrLocalGroupNameRequired indicates an operation was requested without a group name.
var ErrLocalGroupNameRequired = errors.New(localGroupNameRequiredMessageConstant)

// ErrMemberNameRequired indicates a mutation was requested without a member name.
var ErrMemberNameRequired = errors.New(memberNameRequiredMessageConstant)

// GroupCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GroupCommandExecutor interface {
	ExecuteGetent(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGpasswd(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Manager reads and mutates local group membership through system tools.
type Manager struct {
	executor GroupCommandExecutor
}

// NewManager constructs a Manager around the provided executor.
func NewManager(executor GroupCommandExecutor) (*Manager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Manager{executor: executor}, nil
}

// ListGroupMembers resolves the named group through the NSS group database and
// returns its member list as a set. A group with an empty member field yields
// an empty set rather than a set holding one empty identifier.
func (manager *Manager) ListGroupMembers(executionContext context.Context, localGroupName string) (membership.MemberSet, error) {
	trimmedGroupName := strings.TrimSpace(localGroupName)
	if len(trimmedGroupName) == 0 {
		return nil, ErrLocalGroupNameRequired
	}

	executionResult, executionError := manager.executor.ExecuteGetent(executionContext, execshell.CommandDetails{
		Arguments: []string{getentGroupDatabaseConstant, trimmedGroupName},
	})
	if executionError != nil {
		return nil, fmt.Errorf(groupReadErrorTemplateConstant, trimmedGroupName, executionError)
	}

	return parseGroupRecord(trimmedGroupName, executionResult.StandardOutput)
}

// AddGroupMember adds one member to the named group through gpasswd.
func (manager *Manager) AddGroupMember(executionContext context.Context, localGroupName string, memberName string) error {
	return manager.mutateGroupMembership(executionContext, gpasswdAddFlagConstant, memberAdditionErrorTemplateConstant, localGroupName, memberName)
}

// RemoveGroupMember removes one member from the named group through gpasswd.
func (manager *Manager) RemoveGroupMember(executionContext context.Context, localGroupName string, memberName string) error {
	return manager.mutateGroupMembership(executionContext, gpasswdDeleteFlagConstant, memberRemovalErrorTemplateConstant, localGroupName, memberName)
}

func (manager *Manager) mutateGroupMembership(executionContext context.Context, operationFlag string, errorTemplate string, localGroupName string, memberName string) error {
	trimmedGroupName := strings.TrimSpace(localGroupName)
	if len(trimmedGroupName) == 0 {
		return ErrLocalGroupNameRequired
	}
	trimmedMemberName := strings.TrimSpace(memberName)
	if len(trimmedMemberName) == 0 {
		return ErrMemberNameRequired
	}

	_, executionError := manager.executor.ExecuteGpasswd(executionContext, execshell.CommandDetails{
		Arguments: []string{operationFlag, trimmedMemberName, trimmedGroupName},
	})
	if executionError != nil {
		return fmt.Errorf(errorTemplate, trimmedMemberName, trimmedGroupName, executionError)
	}
	return nil
}

// parseGroupRecord splits a colon-delimited group record and extracts the
// comma-separated member field. Blank member entries are dropped so the empty
// field of a memberless group normalizes to an empty set.
func parseGroupRecord(localGroupName string, groupRecord string) (membership.MemberSet, error) {
	trimmedRecord := strings.TrimSpace(groupRecord)
	recordFields := strings.Split(trimmedRecord, groupRecordFieldSeparatorConstant)
	if len(recordFields) < groupRecordMinimumFieldCountConstant {
		return nil, fmt.Errorf(groupRecordMalformedTemplateConstant, localGroupName, trimmedRecord)
	}

	localMembers := membership.NewMemberSet()
	for _, memberCandidate := range strings.Split(recordFields[groupRecordMemberFieldIndexConstant], groupMemberListSeparatorConstant) {
		trimmedMember := strings.TrimSpace(memberCandidate)
		if len(trimmedMember) == 0 {
			continue
		}
		localMembers.Add(trimmedMember)
	}
	return localMembers, nil
}
