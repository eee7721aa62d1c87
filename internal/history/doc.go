// Package history reads the revision history of a figure asset, extracts
// its content at each revision and renders a self-contained HTML page that
// shows all versions side by side.
//
// Revision-control access goes through the Backend interface. GitCLI shells
// out to the git binary; GoGit reads the repository with go-git and needs no
// external process. Both produce identical Revision values.
package history
