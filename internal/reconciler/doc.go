// Package reconciler turns presence observations into indicator updates
// and Home Assistant deliveries.
//
// It keeps the last known presence, ignores observations that do not
// change it, and on a transition updates the indicator optimistically
// before attempting delivery. Incomplete configuration skips delivery
// silently; connectivity and delivery failures surface through the error
// status but never roll the tracked presence back.
package reconciler
