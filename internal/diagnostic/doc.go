// Package diagnostic collects structured errors and warnings found while
// validating configuration, so every problem is reported in one pass
// instead of stopping at the first.
package diagnostic
