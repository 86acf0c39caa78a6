// Package layers provides utility functions for creating and managing UI layers
package layers

import "charm.land/lipgloss/v2"

// Modal sizing
const (
	ModalMinWidth      = 40
	ModalMaxWidth      = 70
	ModalWidthDivisor  = 2
	ModalBorderPadding = 6 // border + horizontal padding on both sides
)

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	contentWidth := lipgloss.Width(content)
	contentHeight := lipgloss.Height(content)

	x := max((screenWidth-contentWidth)/2, 0)
	y := max((screenHeight-contentHeight)/2, 0)

	return lipgloss.NewLayer(content).X(x).Y(y)
}

// ModalWidth returns the outer width of a form or dialog for the screen,
// half the screen clamped to [ModalMinWidth, ModalMaxWidth] and never wider
// than the screen itself.
func ModalWidth(screenWidth int) int {
	width := min(max(screenWidth/ModalWidthDivisor, ModalMinWidth), ModalMaxWidth)
	return min(width, screenWidth)
}

// ModalContentWidth returns the width available inside a modal of the screen
func ModalContentWidth(screenWidth int) int {
	return max(ModalWidth(screenWidth)-ModalBorderPadding, 1)
}
