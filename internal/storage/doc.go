// Package storage writes the generated calendar to disk.
//
// Files are written atomically: content is streamed into a temporary file next to the
// target and renamed into place once it is complete, so an interrupted or failed run
// never leaves a half-written calendar behind. The default location is ./out.
package storage
