// @focus: #sys { term }
// Package terminal defines the cell model and the narrow I/O capability the
// engine renders through.
//
// Features:
//   - Packed color encoding (default, 24-bit RGB, 256-color palette)
//   - Backend interface: init/fini, size, cell updates, flush, timed input poll
//   - TcellDriver for real terminals, Headless for deterministic tests
//   - Clean terminal restoration on panic
package terminal
