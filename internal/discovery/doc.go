// Package discovery enumerates tracked files beneath a directory tree.
package discovery
