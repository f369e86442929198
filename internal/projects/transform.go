package projects

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/heaths/gh-pinned/internal/models"
)

// Keep reports whether a pinned node should be shown.
func Keep(node models.RepositoryNode) bool {
	return !node.IsArchived && node.Description != ""
}

// NewProject maps a pinned node to a project. The leading word of the
// description is dropped and becomes the icon if it contains an emoji.
func NewProject(node models.RepositoryNode) models.Project {
	return models.Project{
		Name:        node.Name,
		URL:         strings.ToLower(node.URL),
		Description: trimDescription(node.Description),
		Icon:        icon(node.Description),
		Homepage:    node.Homepage,
		Template:    false,
	}
}

// Transform filters and maps nodes in order. The result is never nil.
func Transform(nodes []models.RepositoryNode) []models.Project {
	projects := make([]models.Project, 0, len(nodes))
	for _, node := range nodes {
		if Keep(node) {
			projects = append(projects, NewProject(node))
		}
	}

	return projects
}

func trimDescription(description string) string {
	_, rest, _ := strings.Cut(description, " ")
	return rest
}

func icon(description string) string {
	first, _, _ := strings.Cut(description, " ")
	if first != "" && gomoji.ContainsEmoji(first) {
		return first
	}

	return ""
}
