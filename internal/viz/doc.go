// Package viz hosts counting labels in a terminal UI.
//
// The package implements the host side of the label using the Bubble Tea
// framework:
//
//   - [Model]: the program model; pumps the frame clock on every tick and
//     renders each label with its progress bar and value sparkline
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Restart every label from the configured start value
//	S     - Stop every label where it is
//	B     - Bounce: count from the current value back to the other end
//	Tab   - Select the next label
//	E     - Cycle the easing method of the selected label
//	P     - Cycle the precision of the selected label
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
