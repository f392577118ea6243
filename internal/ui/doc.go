// Package ui provides terminal output components for the zscreen CLI.
//
// This package uses Lipgloss to render reconcile summaries, screen
// listings and confirmation prompts. Everything follows a "run once and
// exit" pattern: output is printed and the command returns, with the
// single exception of the typed deletion confirmation.
//
// # Components
//
//   - RenderSummary: outcome lines for apply/delete (created, updated,
//     deleted, unchanged), with dry-run phrasing
//   - RenderScreenInfo / RenderGrid / RenderServerStatus: sectioned
//     detail views for show, validate and status
//   - RenderError / RenderProblems: failure lines
//   - ConfirmDeletion: warning box plus a typed "yes" prompt
//
// # Logging Integration
//
// This package expects logging to be controlled via the ZSCREEN_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent,
// allowing the curated CLI output to be displayed cleanly.
package ui
