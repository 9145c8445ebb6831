// Package cli provides the interactive AteliêPerto command-line client.
//
// It wires configuration, local storage, the backend API client, and an
// interactive REPL. Typical flow: restore a persisted session, load the
// provider directory, and execute user commands.
//
// Key features:
//   - Login / Logout / Register / password reset request
//   - Browse, search, and refresh the seamstress directory
//   - Show a full provider profile
//   - Toggle the light/dark theme
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
