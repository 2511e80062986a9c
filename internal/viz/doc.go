// Package viz renders spring scenes for the terminal.
//
//   - [Table]: every quantity of a scene with its unit and range
//   - [Diagram]: the springs and robotic arm drawn to scale on one axis
//   - [Plot]: a line chart of a swept quantity
//
// Styles are plain lipgloss values and degrade to unstyled text when the
// output is not a terminal.
package viz
