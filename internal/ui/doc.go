// Package ui contains the Bubble Tea program for the file browser view.
// The Model focuses on message orchestration while dedicated helpers own
// input, rendering and the glue to the tooltip controller.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse events, directory loads).
//   - Keyboard focus moves around a ring of toolbar buttons plus the file
//     list. Each move is reported to the tooltip controller as a blur of the
//     old anchor followed by a focus of the new one.
//   - Mouse motion is hit-tested against the rendered toolbar and reported as
//     pointer leave/enter pairs. Presses focus their target and then count as
//     a click anywhere in the view, which dismisses the tooltip.
//
// Tooltip timing:
//   - The controller asks for a deferred show through a Scheduler. The model
//     turns each task into a tea.Tick command; when it fires, tooltipDueMsg
//     hands the sequence number back to Controller.Fire, which ignores it if
//     anything happened in between.
//
// Rendering:
//   - Row 0 is the toolbar and row 1 is reserved for the tooltip, so showing or
//     hiding it never shifts the file list. The label is drawn under the
//     button it belongs to.
package ui
