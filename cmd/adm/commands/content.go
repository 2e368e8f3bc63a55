// Package commands provides CLI commands for the admin tool.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"teachassist/internal/services"
	contextutils "teachassist/internal/utils"

	"github.com/spf13/cobra"
)

// ContentCommands returns the content pipeline commands: sections, slides,
// and narrate, each reading one payload JSON file.
func ContentCommands(contentService services.ContentServiceInterface) []*cobra.Command {
	sectionsCmd := &cobra.Command{
		Use:   "sections <file.json>",
		Short: "Normalize a payload file into sections",
		Long:  `Run the normalization pass over a payload JSON file and print the resolved mode and sections as indented JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadPayload(args[0])
			if err != nil {
				return err
			}
			mode, sections, err := contentService.Normalize(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{
				"mode":     mode,
				"sections": sections,
			})
		},
	}

	slidesCmd := &cobra.Command{
		Use:   "slides <file.json>",
		Short: "Project a payload file into a slide deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadPayload(args[0])
			if err != nil {
				return err
			}
			mode, slides, err := contentService.Slides(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{
				"mode":   mode,
				"slides": slides,
			})
		},
	}

	narrateCmd := &cobra.Command{
		Use:   "narrate <file.json>",
		Short: "Select the narration text for a payload file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := loadPayload(args[0])
			if err != nil {
				return err
			}
			text, placeholder, err := contentService.Narration(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{
				"text":        text,
				"placeholder": placeholder,
			})
		},
	}

	return []*cobra.Command{sectionsCmd, slidesCmd, narrateCmd}
}

// loadPayload reads and parses one payload JSON file.
func loadPayload(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, contextutils.WrapErrorf(err, "failed to read payload file %s", path)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidFormat, "payload file %s is not a JSON object: %w", path, err)
	}
	return payload, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return contextutils.WrapError(err, "failed to encode output")
	}
	fmt.Println(string(out))
	return nil
}
