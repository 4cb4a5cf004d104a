// Package rigcat provides a catalog browser for computer-configuration
// listings. It extracts rigs (cpu/gpu/ram/price) from a stored HTML
// snapshot, merges them into a deduplicated JSON catalog, and serves
// statistics, component search, and AI-assisted analysis through a
// chat-bot interface.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, fs/).
package rigcat
