// Package output prints chart instances and run reports.
//
// Output comes in three formats. Terminal output is styled with pterm tables
// and glamour-rendered markdown, text output is the same content stripped of
// escape codes, and JSON is meant for scripts. FormatAuto resolves to
// terminal or text by looking at the destination file.
package output
