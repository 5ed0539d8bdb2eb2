package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaFileName = "config.schema.json"

// Schema reflects the JSON schema of Config.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:              "toml",
		AllowAdditionalProperties: false,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/sitestyle/config.schema.json"
	schema.Title = "sitestyle configuration"
	schema.Description = "Configuration for sitestyle, per-site font and scaling preferences"
	return schema
}

// WriteSchema writes the indented JSON schema to w.
func WriteSchema(w io.Writer) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// GenerateSchemaFile writes the schema next to the config file and returns its path.
func GenerateSchemaFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, dirPerm); err != nil {
		return "", err
	}

	path := filepath.Join(configDir, schemaFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	if err := WriteSchema(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
