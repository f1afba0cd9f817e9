// Package portal flattens saved university portal pages into class blocks.
//
// A saved "dates" page lists each class as an h4.text-info header followed by a table
// whose td cells hold the session label and the Persian start and end dates. ParseBlocks
// walks headers and cells in document order and hands the typed cells to the schedule
// package.
package portal
