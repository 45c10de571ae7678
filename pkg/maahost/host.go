// Package maahost is the boundary between the custom units and the
// MaaFramework host. Decision logic talks to the Host interface; the real
// implementation wraps *maa.Context, tests use maahosttest.
package maahost

import (
	"errors"
	"image"
)

// ErrNoController is returned when the tasker has no controller bound.
var ErrNoController = errors.New("controller is nil")

// ErrNoTasker is returned when the context has no tasker.
var ErrNoTasker = errors.New("tasker is nil")

// Host is everything a custom unit may ask of the framework during a callback.
type Host interface {
	// RunTask runs a pipeline entry synchronously. override may be nil.
	RunTask(entry string, override map[string]any) error
	// RunRecognition runs the recognition of entry against img without acting.
	RunRecognition(entry string, img image.Image, override map[string]any) (*Detail, error)
	// OverrideNext replaces the next list of node name.
	OverrideNext(name string, next []string) error
	// OverridePipeline applies a pipeline override for the rest of the task.
	OverridePipeline(override map[string]any) error
	// Screencap captures a fresh frame.
	Screencap() (image.Image, error)
	// Click taps at screen coordinates and waits for completion.
	Click(x, y int) error
	// Focus pushes a line of text to the host UI.
	Focus(content string) error
	// Stopping reports whether the tasker is stopping or no longer running.
	Stopping() bool
}
