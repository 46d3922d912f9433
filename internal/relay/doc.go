// Package relay is the telemetry side of the system: it buffers raw field
// sensor readings arriving over MQTT, aggregates them on a fixed window,
// runs the scalar soil-water model and drydown forecast, and pushes the
// resulting payload to the cloud hub over WebSocket, where viewer clients
// (browser, VR) subscribe.
//
// The relay feeds the core pipeline and never reaches into it. Reconnect and
// retry policy lives here exclusively; the core performs no retries.
package relay
