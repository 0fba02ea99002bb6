// Package cmd implements the meetpresence command line interface.
//
// The default command is watch, which runs the presence daemon.
// configure, test, send and auth manage settings, verify connectivity,
// push a manual state and authorize the Meet API source.
package cmd
