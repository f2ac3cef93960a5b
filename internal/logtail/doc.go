// Package logtail reads the tail of the CLI's zap log file for
// "lamplight logs".
//
// # Overview
//
// When log_file is set in the config, commands write zap's console encoding
// to that file instead of stderr. Each entry is one tab-separated line:
//
//	2025-10-08T21:01:05.000Z	INFO	lamplight	fetch ok	{"records": 2}
//	└── time ──────────────┘	└lvl┘	└logger─┘	└── message and fields ──┘
//
// Read scans the file once and keeps the last maxLines entries at or above
// the requested level in a ring buffer, so memory stays bounded however long
// the log grows.
//
// # Levels
//
// ParseLevel reads the second column with zapcore's own level parser. Lines
// that do not parse (stack traces, wrapped values, blank lines) inherit the
// level of the entry they follow, so a filtered tail keeps an error together
// with its stack trace. Lines before the first parseable entry count as info.
//
// # Missing Files
//
// A log file that does not exist yet yields no entries and no error; the CLI
// may not have logged anything. Other open and read failures are returned.
package logtail
