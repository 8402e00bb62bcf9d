// Package harness provides utilities for integration testing the eresus CLI.
// It handles binary compilation, environment isolation, and command execution.
//
// Environment variables managed:
//   - ERESUS_HOME: Isolated per test (temp directory)
//   - ERESUS_DEBUG: Disabled to reduce noise
//   - ERESUS_MUTED: Set so no test ever plays an alert
package harness
