//go:build !wasip1

package guest

// Install is a no-op outside the wasm target.
func Install() {}
