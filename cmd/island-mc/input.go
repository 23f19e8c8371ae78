package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, app *App) {
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if app.state == statePlaying {
			app.player.HandleMouseMovement(xpos, ypos)
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		app.input.HandleMouseButtonEvent(button, action)
	})

	app.input.SetKeyCallback(window)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.renderer.UpdateViewport(fbWidth, fbHeight)
	})

	// Refresh callback (called during window resize to prevent visual glitches)
	window.SetRefreshCallback(func(w *glfw.Window) {
		app.refresh()
	})
}
