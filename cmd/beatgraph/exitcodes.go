package main

// Exit codes
const (
	ExitSuccess         = 0 // Success
	ExitError           = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError     = 2 // Configuration error (no workspace, unreadable config)
	ExitDataError       = 3 // Data error (no snapshot, malformed cache)
	ExitUnknownSchool   = 4 // School not in the season
	ExitGraphvizMissing = 5 // png/svg requested without graphviz installed
)
