// Package classify routes candidates whose identifier could not be
// resolved. Two independent axes are assessed: content type (homebrew
// self-produced audio vs. a likely-missing identifier) and file count
// (single vs. multi). Routing depends only on the content type; the file
// count decides whether downstream renaming is permitted.
//
// The homebrew heuristic (an explicit "Author - Title" naming shape whose
// author portion matches a known author hint) is an admitted
// approximation. It lives entirely behind this package so a better policy
// can replace it without touching the rest of the pipeline.
package classify
