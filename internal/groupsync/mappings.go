package groupsync

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	mappingsPathRequiredMessageConstant  = "mappings file path is required"
	mappingsReadFailureTemplateConstant  = "read mappings file %s: %w"
	mappingsParseFailureTemplateConstant = "parse mappings file %s: %w"
	mappingsEmptyMessageTemplateConstant = "mappings file %s declares no group mappings"
)

// ErrMappingsPathRequired indicates LoadGroupMappings received an empty path.
var ErrMappingsPathRequired = errors.New(mappingsPathRequiredMessageConstant)

type mappingsDocument struct {
	GroupMap []GroupMapping `yaml:"group_map"`
}

// LoadGroupMappings reads a standalone YAML mappings file and returns the
// group mappings it declares. The file carries a top-level group_map list
// with uw_group and local_group entries.
func LoadGroupMappings(filePath string) ([]GroupMapping, error) {
	if len(filePath) == 0 {
		return nil, ErrMappingsPathRequired
	}
	fileContents, readError := os.ReadFile(filePath)
	if readError != nil {
		return nil, fmt.Errorf(mappingsReadFailureTemplateConstant, filePath, readError)
	}
	var document mappingsDocument
	if unmarshalError := yaml.Unmarshal(fileContents, &document); unmarshalError != nil {
		return nil, fmt.Errorf(mappingsParseFailureTemplateConstant, filePath, unmarshalError)
	}
	if len(document.GroupMap) == 0 {
		return nil, fmt.Errorf(mappingsEmptyMessageTemplateConstant, filePath)
	}
	return document.GroupMap, nil
}
