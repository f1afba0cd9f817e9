// Package schedule turns the flattened cells of a course page into dated class sessions.
//
// A course page is a sequence of typed cells: a header naming the class, then groups of
// a session marker followed by a start-date cell and an end-date cell. Assemble scans one
// class block for those marker/value/value triples, converts both dates from the Jalali
// calendar and numbers the sessions that convert. Anything that cannot become a session
// is reported as a Skip instead of failing the class.
package schedule
