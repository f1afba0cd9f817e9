// Package cli implements the command-line interface for class-schedule.
//
// The cli package provides the Cobra-based commands: convert (saved portal pages to one
// .ics file), date (convert a single Persian date string) and inspect (list the events
// of a calendar file). Output is text or JSON. It wires configuration, logging, the
// portal parser, session assembly, the calendar serializer and output storage together.
package cli
