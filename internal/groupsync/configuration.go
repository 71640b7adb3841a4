package groupsync

import (
	"errors"
	"fmt"
	"strings"
)

const (
	baseURLConfigurationKeyConstant               = "gws_base_url"
	caCertificateConfigurationKeyConstant         = "gws_ca_cert"
	clientCertificateConfigurationKeyConstant     = "gws_client_cert"
	clientKeyConfigurationKeyConstant             = "gws_client_key"
	groupMapConfigurationKeyConstant              = "group_map"
	configurationKeySeparatorConstant             = "."
	defaultBaseURLConstant                        = "https://groups.uw.edu/group_sws/v3"
	defaultCACertificatePathConstant              = "/etc/ssl/certs/uwca.pem"
	defaultClientCertificatePathConstant          = "/etc/ssl/private/gws-client.pem"
	defaultClientKeyPathConstant                  = "/etc/ssl/private/gws-client.key"
	uwGroupMappingConfigurationKeyConstant        = "uw_group"
	localGroupMappingConfigurationKeyConstant     = "local_group"
	missingBaseURLMessageConstant                 = "remote service base URL must be configured"
	missingCACertificateMessageConstant           = "certificate authority bundle path must be configured"
	missingClientCertificateMessageConstant       = "client certificate path must be configured"
	missingClientKeyMessageConstant               = "client key path must be configured"
	emptyGroupMapMessageConstant                  = "at least one group mapping must be configured"
	incompleteGroupMappingMessageTemplateConstant = "group mapping %d must declare both %s and %s"
)

// GroupMapping pairs one remote directory group with the local group that
// mirrors its membership.
type GroupMapping struct {
	UWGroupName    string `mapstructure:"uw_group"    yaml:"uw_group"`
	LocalGroupName string `mapstructure:"local_group" yaml:"local_group"`
}

// Configuration captures the settings consumed by the sync command.
type Configuration struct {
	BaseURL               string         `mapstructure:"gws_base_url"`
	CACertificatePath     string         `mapstructure:"gws_ca_cert"`
	ClientCertificatePath string         `mapstructure:"gws_client_cert"`
	ClientKeyPath         string         `mapstructure:"gws_client_key"`
	GroupMap              []GroupMapping `mapstructure:"group_map"`
}

// DefaultConfiguration returns the built-in settings applied before any
// configuration file or environment overrides.
func DefaultConfiguration() Configuration {
	return Configuration{
		BaseURL:               defaultBaseURLConstant,
		CACertificatePath:     defaultCACertificatePathConstant,
		ClientCertificatePath: defaultClientCertificatePathConstant,
		ClientKeyPath:         defaultClientKeyPathConstant,
	}
}

// DefaultConfigurationValues flattens the default settings into the dotted
// keys registered with the configuration loader.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		configurationKey + configurationKeySeparatorConstant + baseURLConfigurationKeyConstant:           defaults.BaseURL,
		configurationKey + configurationKeySeparatorConstant + caCertificateConfigurationKeyConstant:     defaults.CACertificatePath,
		configurationKey + configurationKeySeparatorConstant + clientCertificateConfigurationKeyConstant: defaults.ClientCertificatePath,
		configurationKey + configurationKeySeparatorConstant + clientKeyConfigurationKeyConstant:         defaults.ClientKeyPath,
	}
}

// Sanitize trims surrounding whitespace from every configured value.
func (configuration *Configuration) Sanitize() {
	configuration.BaseURL = strings.TrimSpace(configuration.BaseURL)
	configuration.CACertificatePath = strings.TrimSpace(configuration.CACertificatePath)
	configuration.ClientCertificatePath = strings.TrimSpace(configuration.ClientCertificatePath)
	configuration.ClientKeyPath = strings.TrimSpace(configuration.ClientKeyPath)
	for mappingIndex := range configuration.GroupMap {
		configuration.GroupMap[mappingIndex].UWGroupName = strings.TrimSpace(configuration.GroupMap[mappingIndex].UWGroupName)
		configuration.GroupMap[mappingIndex].LocalGroupName = strings.TrimSpace(configuration.GroupMap[mappingIndex].LocalGroupName)
	}
}

// Validate reports the first configuration problem that would prevent a
// reconciliation run from starting.
func (configuration *Configuration) Validate() error {
	if len(configuration.BaseURL) == 0 {
		return errors.New(missingBaseURLMessageConstant)
	}
	if len(configuration.CACertificatePath) == 0 {
		return errors.New(missingCACertificateMessageConstant)
	}
	if len(configuration.ClientCertificatePath) == 0 {
		return errors.New(missingClientCertificateMessageConstant)
	}
	if len(configuration.ClientKeyPath) == 0 {
		return errors.New(missingClientKeyMessageConstant)
	}
	if len(configuration.GroupMap) == 0 {
		return errors.New(emptyGroupMapMessageConstant)
	}
	for mappingIndex, groupMapping := range configuration.GroupMap {
		if len(groupMapping.UWGroupName) == 0 || len(groupMapping.LocalGroupName) == 0 {
			return fmt.Errorf(
				incompleteGroupMappingMessageTemplateConstant,
				mappingIndex,
				uwGroupMappingConfigurationKeyConstant,
				localGroupMappingConfigurationKeyConstant,
			)
		}
	}
	return nil
}
