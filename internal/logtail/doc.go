// Package logtail reads the tail of the application log for the in-app log
// overlay.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// O(maxLines) however large the file grows. A missing file returns nil, nil;
// the log file does not exist until the first entry is written.
//
// Parse splits a line in the logger's text format into time, level, prefix
// and message so the UI can color each column. Anything unrecognised is
// returned whole as the message.
package logtail
