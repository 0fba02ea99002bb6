// Package homeassistant implements the delivery client that pushes meeting
// presence to a Home Assistant instance.
//
// Two wire strategies exist, selected by the configured method:
//
//   - api: invoke the input_boolean.turn_on/turn_off service for the
//     configured entity, falling back to a direct state write when the
//     service call is rejected. Only boolean-like entities support the
//     semantic service call; the state endpoint is universal.
//   - webhook: post {"value":"on"|"off"} to a webhook trigger.
//
// The package also provides the user-invoked connection test, which runs a
// single diagnostic request without retries or connectivity gating.
package homeassistant
