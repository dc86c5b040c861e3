// Package diagnostic provides structured errors, warnings and infos produced while
// planning mapping methods.
//
// Key capabilities:
//   - Unmapped property reports with "did you mean" suggestions
//   - Ambiguity reports listing every competing candidate
//   - Missing factory and structural inconsistency errors
//   - Reverse configuration notes
package diagnostic
