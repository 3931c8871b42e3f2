// Package controller implements the chart lifecycle state machine.
//
// A Controller binds document elements to live chart handles. Every element
// resolves to an instance key (read from its tag, or freshly generated) and
// each key moves through these states:
//
//	Absent --Create--> Live
//	Live --data-only Update--> Live   (same handle, redrawn in place)
//	Live --structural Update--> Live' (old handle destroyed, new one created)
//	Live --Destroy--> Absent
//
// An update is structural when it sets a chart type or rendering options;
// the engine can only swap data in place. Missing data on update keeps the
// dataset of the live chart.
//
// Calls are serialized by the controller, so operations on one key are
// totally ordered. Batch application isolates failures per element.
package controller
