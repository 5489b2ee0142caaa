// Package kestrel fits feature generators on tabular data and replays them at
// inference time.
package kestrel

// Version is the current release of the kestrel CLI.
const Version = "0.1.0"
