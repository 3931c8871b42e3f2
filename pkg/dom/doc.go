// Package dom binds charts to elements of an XML or XHTML page held in an
// etree document.
//
// Elements are located with Select, which understands "#id", ".class",
// bare tag names and etree paths. The Binder stores instance keys in a
// configurable attribute and hands out drawing surfaces for <canvas>
// elements only. Drawing writes the rendered frame as the canvas text;
// clearing restores the canvas to its original, empty state.
package dom
