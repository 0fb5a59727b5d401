// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextExtractor: Detects file kinds and extracts plain text
//   - DocumentStore: Document and content persistence
//   - DeviceStore: Device persistence for the cleanup job
//   - SchedulerStore: Scheduled task state and history
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LanguageAnalyzer: Sentence segmentation and phrase extraction.
//     Without it, summaries fall back to a text prefix and keywords are empty.
//   - LegacyDocConverter: Converts legacy .doc files. Without it, .doc files fail extraction.
//   - Metrics: Processing and search instrumentation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
