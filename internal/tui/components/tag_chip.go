package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// RenderTagChip renders a single tag as a small colored chip
func RenderTagChip(tag *models.Tag) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(tag.Color)).
		Render("#" + tag.Name)
}

// renderTagChips renders every tag on one line, truncated to width
func renderTagChips(tags []*models.Tag, width int) string {
	var chips []string
	used := 0
	for _, tag := range tags {
		chip := RenderTagChip(tag)
		w := lipgloss.Width(chip)
		if used+w > width {
			chips = append(chips, SubtleStyle.Render("…"))
			break
		}
		chips = append(chips, chip)
		used += w + 1
	}
	return strings.Join(chips, " ")
}
