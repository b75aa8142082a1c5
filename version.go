package main

// Version is the CLI version, overridden at release time with
// -ldflags "-X main.Version=...".
var Version = "dev"
