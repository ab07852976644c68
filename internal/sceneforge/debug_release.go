//go:build !debug
// +build !debug

package sceneforge

func DebugLog(format string, args ...interface{})     {}
func DebugLogOnce(format string, args ...interface{}) {}
