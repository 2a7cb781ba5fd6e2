// Package cli implements the interactive demo shell for the pinauth client.
// It is the presentation stand-in: it renders prompts and messages and calls
// into the session manager, which owns all authentication state.
package cli
