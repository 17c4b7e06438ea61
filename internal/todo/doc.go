// Package todo loads, validates, and updates the task file.
//
// The task file (tasks.json) is a single JSON array of task records:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Morning call at tomorrow 8:00AM",
//	    "completed": false,
//	    "created_at": "2025-08-02 14:00:00",
//	    "added_at": "2025-08-02 14:00:00"
//	  }
//	]
//
// # Identifiers
//
// A new task gets the highest id currently stored plus one. Ids are not
// reused while a higher id survives, so they are not dense after deletions.
//
// # Operations
//
// Every Store operation is load-mutate-save: it reads the whole file,
// applies one change, and writes the whole file back. There is no locking;
// two processes writing at once will lose one update.
//
// # Missing and corrupt files
//
// LoadOrEmpty treats a missing, empty, or undecodable file as an empty
// list. Decode failures are logged, not returned. Use Load when the caller
// needs to know the difference (the doctor command does).
//
// # File Format
//
// When writing the task file, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Non-ASCII characters written literally
//
// # Validation
//
// Validate checks raw file contents against an embedded JSON Schema
// (draft 2020-12) or an on-disk override, followed by checks the schema
// cannot express (duplicate ids).
package todo
