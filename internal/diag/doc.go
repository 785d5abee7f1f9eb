// Package diag carries positioned diagnostics produced while resolving
// //from directives.
//
// Non-fatal diagnostics are reported to a Sink and the pass continues. A
// fatal diagnostic is reported as well and then returned as an error, which
// ends the pass for that type.
package diag
