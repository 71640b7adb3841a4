package groupsync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/gwsync/internal/membership"
)

const (
	serviceLoggerRequiredMessageConstant       = "logger dependency is required"
	serviceRemoteListerRequiredMessageConstant = "remote membership lister dependency is required"
	serviceLocalGroupsRequiredMessageConstant  = "local group manager dependency is required"
	serviceOutputRequiredMessageConstant       = "output writer dependency is required"
	noMappingsMessageConstant                  = "no group mappings to reconcile"
	remoteFetchFailureTemplateConstant         = "retrieve members of remote group %q: %w"
	localReadFailureTemplateConstant           = "read members of local group %q: %w"
	fatalLineTemplateConstant                  = "FATAL: %v\n"
	additionErrorLineTemplateConstant          = "ERROR: adding %s to %s: %v\n"
	removalErrorLineTemplateConstant           = "ERROR: removing %s from %s: %v\n"
	summaryLineTemplateConstant                = "UWGROUP: %s LGROUP: %s ADD: %d REM: %d\n"
	remoteGroupLogFieldNameConstant            = "uw_group"
	localGroupLogFieldNameConstant             = "local_group"
	memberLogFieldNameConstant                 = "member"
	addedCountLogFieldNameConstant             = "added"
	removedCountLogFieldNameConstant           = "removed"
	membershipInSyncLogMessageConstant         = "Group membership already in sync"
	mappingReconciledLogMessageConstant        = "Reconciled group mapping"
	memberAdditionFailedLogMessageConstant     = "Failed to add group member"
	memberRemovalFailedLogMessageConstant      = "Failed to remove group member"
)

// Sentinel errors returned by NewService when a dependency is missing.
var (
	ErrLoggerRequired       = errors.New(serviceLoggerRequiredMessageConstant)
	ErrRemoteListerRequired = errors.New(serviceRemoteListerRequiredMessageConstant)
	ErrLocalGroupsRequired  = errors.New(serviceLocalGroupsRequiredMessageConstant)
	ErrOutputRequired       = errors.New(serviceOutputRequiredMessageConstant)
	ErrNoMappings           = errors.New(noMappingsMessageConstant)
)

// RemoteMembershipLister retrieves the personal members of a remote
// directory group.
type RemoteMembershipLister interface {
	ListGroupMembers(executionContext context.Context, remoteGroupName string) (membership.MemberSet, error)
}

// LocalGroupManager reads and mutates membership of local operating-system
// groups.
type LocalGroupManager interface {
	ListGroupMembers(executionContext context.Context, localGroupName string) (membership.MemberSet, error)
	AddGroupMember(executionContext context.Context, localGroupName string, memberName string) error
	RemoveGroupMember(executionContext context.Context, localGroupName string, memberName string) error
}

// Dependencies enumerates the collaborators required by the Service.
type Dependencies struct {
	Logger       *zap.Logger
	RemoteLister RemoteMembershipLister
	LocalGroups  LocalGroupManager
	Output       io.Writer
}

// MappingResult summarizes the reconciliation outcome for one group mapping.
type MappingResult struct {
	UWGroupName    string
	LocalGroupName string
	AddedCount     int
	RemovedCount   int
}

// Service drives membership reconciliation across configured group mappings.
type Service struct {
	logger       *zap.Logger
	remoteLister RemoteMembershipLister
	localGroups  LocalGroupManager
	output       io.Writer
}

// NewService validates the provided dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerRequired
	}
	if dependencies.RemoteLister == nil {
		return nil, ErrRemoteListerRequired
	}
	if dependencies.LocalGroups == nil {
		return nil, ErrLocalGroupsRequired
	}
	if dependencies.Output == nil {
		return nil, ErrOutputRequired
	}
	return &Service{
		logger:       dependencies.Logger,
		remoteLister: dependencies.RemoteLister,
		localGroups:  dependencies.LocalGroups,
		output:       dependencies.Output,
	}, nil
}

// Reconcile processes the provided mappings in order. A remote fetch or
// local read failure writes a FATAL line and aborts the run; individual
// membership mutation failures write ERROR lines and reconciliation
// continues. Every fully processed mapping produces one summary line.
func (service *Service) Reconcile(executionContext context.Context, groupMappings []GroupMapping) ([]MappingResult, error) {
	if len(groupMappings) == 0 {
		return nil, ErrNoMappings
	}
	mappingResults := make([]MappingResult, 0, len(groupMappings))
	for _, groupMapping := range groupMappings {
		mappingResult, reconcileError := service.reconcileMapping(executionContext, groupMapping)
		if reconcileError != nil {
			fmt.Fprintf(service.output, fatalLineTemplateConstant, reconcileError)
			return mappingResults, reconcileError
		}
		mappingResults = append(mappingResults, mappingResult)
		fmt.Fprintf(
			service.output,
			summaryLineTemplateConstant,
			mappingResult.UWGroupName,
			mappingResult.LocalGroupName,
			mappingResult.AddedCount,
			mappingResult.RemovedCount,
		)
	}
	return mappingResults, nil
}

func (service *Service) reconcileMapping(executionContext context.Context, groupMapping GroupMapping) (MappingResult, error) {
	mappingResult := MappingResult{
		UWGroupName:    groupMapping.UWGroupName,
		LocalGroupName: groupMapping.LocalGroupName,
	}
	remoteMembers, remoteError := service.remoteLister.ListGroupMembers(executionContext, groupMapping.UWGroupName)
	if remoteError != nil {
		return mappingResult, fmt.Errorf(remoteFetchFailureTemplateConstant, groupMapping.UWGroupName, remoteError)
	}
	localMembers, localError := service.localGroups.ListGroupMembers(executionContext, groupMapping.LocalGroupName)
	if localError != nil {
		return mappingResult, fmt.Errorf(localReadFailureTemplateConstant, groupMapping.LocalGroupName, localError)
	}
	if remoteMembers.Equal(localMembers) {
		service.logger.Debug(
			membershipInSyncLogMessageConstant,
			zap.String(remoteGroupLogFieldNameConstant, groupMapping.UWGroupName),
			zap.String(localGroupLogFieldNameConstant, groupMapping.LocalGroupName),
		)
		return mappingResult, nil
	}
	membershipDelta := membership.Diff(remoteMembers, localMembers)
	for _, memberName := range membershipDelta.ToAdd {
		additionError := service.localGroups.AddGroupMember(executionContext, groupMapping.LocalGroupName, memberName)
		if additionError != nil {
			fmt.Fprintf(service.output, additionErrorLineTemplateConstant, memberName, groupMapping.LocalGroupName, additionError)
			service.logger.Warn(
				memberAdditionFailedLogMessageConstant,
				zap.String(memberLogFieldNameConstant, memberName),
				zap.String(localGroupLogFieldNameConstant, groupMapping.LocalGroupName),
				zap.Error(additionError),
			)
			continue
		}
		mappingResult.AddedCount++
	}
	for _, memberName := range membershipDelta.ToRemove {
		removalError := service.localGroups.RemoveGroupMember(executionContext, groupMapping.LocalGroupName, memberName)
		if removalError != nil {
			fmt.Fprintf(service.output, removalErrorLineTemplateConstant, memberName, groupMapping.LocalGroupName, removalError)
			service.logger.Warn(
				memberRemovalFailedLogMessageConstant,
				zap.String(memberLogFieldNameConstant, memberName),
				zap.String(localGroupLogFieldNameConstant, groupMapping.LocalGroupName),
				zap.Error(removalError),
			)
			continue
		}
		mappingResult.RemovedCount++
	}
	service.logger.Info(
		mappingReconciledLogMessageConstant,
		zap.String(remoteGroupLogFieldNameConstant, groupMapping.UWGroupName),
		zap.String(localGroupLogFieldNameConstant, groupMapping.LocalGroupName),
		zap.Int(addedCountLogFieldNameConstant, mappingResult.AddedCount),
		zap.Int(removedCountLogFieldNameConstant, mappingResult.RemovedCount),
	)
	return mappingResult, nil
}
