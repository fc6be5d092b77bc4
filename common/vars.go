package common

// Version is overridden at build time with -ldflags "-X github.com/mysticon-legends/setup/common.Version=..."
var Version = "dev"
