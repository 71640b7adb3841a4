package cli_test

import (
	"strings"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gwsync/cmd/cli"
	"github.com/temirov/gwsync/internal/groupsync"
)

const (
	testConfigurationTypeConstant = "yaml"
	testConfigurationBodyConstant = `common:
  log_level: info
  log_format: structured
sync:
  gws_base_url: https://groups.example.edu/group_sws/v3
  gws_ca_cert: /etc/ssl/certs/example-ca.pem
  gws_client_cert: /etc/ssl/private/example-client.pem
  gws_client_key: /etc/ssl/private/example-client.key
  group_map:
    - uw_group: u_example_admins
      local_group: exampleadm
    - uw_group: u_example_operators
      local_group: exampleops
`
)

func TestApplicationConfigurationDecoding(testInstance *testing.T) {
	viperInstance := viper.New()
	viperInstance.SetConfigType(testConfigurationTypeConstant)
	require.NoError(testInstance, viperInstance.ReadConfig(strings.NewReader(testConfigurationBodyConstant)))

	var decodedConfiguration cli.ApplicationConfiguration
	decodeError := mapstructure.Decode(viperInstance.AllSettings(), &decodedConfiguration)
	require.NoError(testInstance, decodeError)

	require.Equal(testInstance, "info", decodedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "structured", decodedConfiguration.Common.LogFormat)
	require.Equal(testInstance, "https://groups.example.edu/group_sws/v3", decodedConfiguration.Sync.BaseURL)
	require.Equal(testInstance, []groupsync.GroupMapping{
		{UWGroupName: "u_example_admins", LocalGroupName: "exampleadm"},
		{UWGroupName: "u_example_operators", LocalGroupName: "exampleops"},
	}, decodedConfiguration.Sync.GroupMap)
}

func TestSyncConfigurationDefaultsValidateOnlyWithMappings(testInstance *testing.T) {
	configuration := groupsync.DefaultConfiguration()
	require.Error(testInstance, configuration.Validate())

	configuration.GroupMap = []groupsync.GroupMapping{
		{UWGroupName: "u_example_admins", LocalGroupName: "exampleadm"},
	}
	require.NoError(testInstance, configuration.Validate())
}
