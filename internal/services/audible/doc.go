// Package audible queries the Audible catalog API for audiobook editions
// matching a title/author pair. It is the resolver's last-resort identifier
// source and is only consulted when external search is explicitly enabled.
package audible
