//go:build darwin && cgo

package main

import "golang.design/x/hotkey/mainthread"

// runOnMainThread keeps the Cocoa event loop on the main thread, which
// desktop hotkeys need on macOS, and runs fn on another one.
func runOnMainThread(fn func()) { mainthread.Init(fn) }
