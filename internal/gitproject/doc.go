// Package gitproject inspects a single git working tree.
//
// Inspector runs git through an execshell-backed executor and reads the
// directory listing through a FileSystem, answering raw queries (remotes,
// stash, uncommitted entries, unpushed commits, non-empty files) and turning
// them into CheckResult verdicts with explanatory messages.
package gitproject
