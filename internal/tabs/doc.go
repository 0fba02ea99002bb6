// Package tabs observes meeting presence from open browser tabs.
//
// It queries the Chrome DevTools HTTP endpoint for the list of open
// targets and matches their URLs against the Meet call pattern
// (https://meet.google.com/xxx-xxx-xxx). A poll-driven Watcher turns the
// point-in-time query into a stream of presence observations for the
// reconciler; the first observation fires immediately on startup.
package tabs
