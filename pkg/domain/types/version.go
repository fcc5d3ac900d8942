package types

// Version is overwritten at build time via -ldflags
var Version = "dev"

// AppName is used for the CLI name, health responses and default paths
const AppName = "zotdav"
