// Package greeting holds the demonstration string formatter exposed alongside
// the fingerprint export. It exists to prove the call boundary round-trips
// text; there is no logic beyond interpolation.
package greeting

import "fmt"

// Greet formats the demo greeting for name.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s from Go + WASM!", name)
}
