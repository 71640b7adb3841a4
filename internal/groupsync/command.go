package groupsync

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gwsync/internal/execshell"
	"github.com/temirov/gwsync/internal/gws"
	"github.com/temirov/gwsync/internal/localgroups"
	"github.com/temirov/gwsync/internal/ui"
	"github.com/temirov/gwsync/internal/utils"
)

const (
	commandUseConstant              = "sync"
	commandShortDescriptionConstant = "Reconcile local group membership with remote directory groups"
	commandLongDescriptionConstant  = "sync fetches the membership of each configured remote directory group and adds or removes members of the mapped local operating-system group until both sides agree."
	mappingsFlagNameConstant        = "mappings"
	mappingsFlagDescriptionConstant = "Path to a YAML file whose group_map list overrides the configured group mappings"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the sync command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() Configuration
	HumanReadableLoggingProvider func() bool
	RemoteLister                 RemoteMembershipLister
	LocalGroups                  LocalGroupManager
	CommandRunner                execshell.CommandRunner
}

// Build constructs the sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(mappingsFlagNameConstant, "", mappingsFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	mappingsFilePath, mappingsFlagError := command.Flags().GetString(mappingsFlagNameConstant)
	if mappingsFlagError != nil {
		return mappingsFlagError
	}
	if len(mappingsFilePath) > 0 {
		loadedMappings, loadError := LoadGroupMappings(mappingsFilePath)
		if loadError != nil {
			return loadError
		}
		configuration.GroupMap = loadedMappings
		configuration.Sanitize()
	}

	if validationError := configuration.Validate(); validationError != nil {
		return validationError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	remoteLister, remoteListerError := builder.resolveRemoteLister(configuration, logger)
	if remoteListerError != nil {
		return remoteListerError
	}

	localGroups, localGroupsError := builder.resolveLocalGroups(logger, humanReadableLogging)
	if localGroupsError != nil {
		return localGroupsError
	}

	service, serviceCreationError := NewService(Dependencies{
		Logger:       logger,
		RemoteLister: remoteLister,
		LocalGroups:  localGroups,
		Output:       utils.NewFlushingWriter(command.OutOrStdout()),
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	_, reconcileError := service.Reconcile(command.Context(), configuration.GroupMap)
	return reconcileError
}

func (builder *CommandBuilder) resolveRemoteLister(configuration Configuration, logger *zap.Logger) (RemoteMembershipLister, error) {
	if builder.RemoteLister != nil {
		return builder.RemoteLister, nil
	}
	return gws.NewClient(gws.ClientOptions{
		BaseURL:               configuration.BaseURL,
		CACertificatePath:     configuration.CACertificatePath,
		ClientCertificatePath: configuration.ClientCertificatePath,
		ClientKeyPath:         configuration.ClientKeyPath,
	}, logger)
}

func (builder *CommandBuilder) resolveLocalGroups(logger *zap.Logger, humanReadableLogging bool) (LocalGroupManager, error) {
	if builder.LocalGroups != nil {
		return builder.LocalGroups, nil
	}
	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}
	executor, executorError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}
	if humanReadableLogging {
		executor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return localgroups.NewManager(executor)
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		configuration := DefaultConfiguration()
		return configuration
	}
	configuration := builder.ConfigurationProvider()
	configuration.Sanitize()
	return configuration
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
