package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindflowapp/mindflow/store"
)

// tagsCmd lists the tag registry.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		tagStore, err := GetTagStore()
		if err != nil {
			return err
		}
		defer func() { _ = tagStore.Close() }()

		tags, err := tagStore.List()
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Printf("%s  %s\n", tagBadge(t), faintStyle.Render(shortID(t.ID)))
		}
		return nil
	},
}

// tagsAddCmd registers a new tag.
var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tagStore, err := GetTagStore()
		if err != nil {
			return err
		}
		defer func() { _ = tagStore.Close() }()

		tag, err := tagStore.Create(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added tag %s\n", tagBadge(tag))
		return nil
	},
}

func init() {
	tagsCmd.AddCommand(tagsAddCmd)
	rootCmd.AddCommand(tagsCmd)
}

// resolveTagNames maps tag names to registry ids, creating tags that do not
// exist yet. The registry itself allows duplicate names; resolution picks the
// first match so repeated --tags flags reuse one id.
func resolveTagNames(tagStore store.TagStore, names []string) ([]string, error) {
	existing, err := tagStore.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, t := range existing {
		if _, ok := byName[t.Name]; !ok {
			byName[t.Name] = t.ID
		}
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
			continue
		}
		tag, err := tagStore.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		byName[tag.Name] = tag.ID
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
