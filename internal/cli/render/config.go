package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/txprep/internal/domain/config"
	"github.com/trebuchet-org/txprep/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// relativePath shortens path against the working directory
func relativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(cwd, path); err == nil {
		return rel
	}
	return path
}

func orNotSet(value string) string {
	if value == "" {
		return labelStyle.Sprint("(not set)")
	}
	return value
}

// RenderConfig renders the stored defaults next to the values in effect
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintln(r.out, FormatWarning("No .txprep/config.local.json file found"))
		fmt.Fprintln(r.out, "   Commands use --network and --account, or prompt for the account")
	} else {
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("📋 Current config:"))
	}

	rows := TableData{}
	for _, key := range config.ValidConfigKeys() {
		value := orNotSet(result.Config.Get(key))
		if result.Overridden(key) {
			effective := result.EffectiveNetwork
			if key == config.ConfigKeyAccount {
				effective = result.EffectiveAccount
			}
			value = fmt.Sprintf("%s %s", value, warningStyle.Sprintf("(overridden: %s)", orNotSet(effective)))
		}
		rows = append(rows, []string{Title(string(key)), value})
	}
	renderKeyValues(r.out, rows)

	if result.Exists {
		fmt.Fprintf(r.out, "📁 config file: %s\n", relativePath(result.ConfigPath))
	}
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing configuration values
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	for _, removed := range result.Removed {
		if removed.Value == "" {
			fmt.Fprintf(r.out, "%s was not set\n", removed.Key)
			continue
		}
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (was %s)", removed.Key, removed.Value)))
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}
