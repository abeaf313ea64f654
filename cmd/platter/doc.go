// Package main hosts the platter CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the whole rip-to-FLAC pipeline:
// converting TOC files to cue sheets, watching the drive and ripping discs,
// encoding completed rips, inspecting the library, and configuration
// scaffolding. It centralizes configuration resolution and structured
// logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
