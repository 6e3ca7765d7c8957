// Package colors contains functions to quickly generate stage3d.Color instances by name (i.e. "White()", "Blue()", "Orange()", etc).
package colors

import "github.com/xydlabs/stage3d"

// White generates a stage3d.Color instance of the provided name.
func White() stage3d.Color {
	return stage3d.NewColor(1, 1, 1, 1)
}

// Black generates a stage3d.Color instance of the provided name.
func Black() stage3d.Color {
	return stage3d.NewColor(0, 0, 0, 1)
}

// LightGray generates a stage3d.Color instance of the provided name.
func LightGray() stage3d.Color {
	return stage3d.NewColor(0.8, 0.8, 0.8, 1)
}

// DarkGray generates a stage3d.Color instance of the provided name.
func DarkGray() stage3d.Color {
	return stage3d.NewColor(0.2, 0.2, 0.2, 1)
}

// Red generates a stage3d.Color instance of the provided name.
func Red() stage3d.Color {
	return stage3d.NewColor(1, 0, 0, 1)
}

// Orange generates a stage3d.Color instance of the provided name (0xf28d00).
func Orange() stage3d.Color {
	return stage3d.NewColorFromHexInt(0xf28d00)
}

// Yellow generates a stage3d.Color instance of the provided name.
func Yellow() stage3d.Color {
	return stage3d.NewColor(1, 1, 0, 1)
}

// Green generates a stage3d.Color instance of the provided name.
func Green() stage3d.Color {
	return stage3d.NewColor(0, 1, 0, 1)
}

// SkyBlue generates a stage3d.Color instance of the provided name.
func SkyBlue() stage3d.Color {
	return stage3d.NewColor(0.5, 0.7, 1, 1)
}

// Blue generates a stage3d.Color instance of the provided name.
func Blue() stage3d.Color {
	return stage3d.NewColor(0, 0, 1, 1)
}
