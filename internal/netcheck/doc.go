// Package netcheck implements the connectivity probe used to fast-fail
// deliveries while the machine is offline.
package netcheck
