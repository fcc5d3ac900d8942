package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr        string
	AllowOrigin string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("ZOTDAV_ADDR"),
		},
		&cli.StringFlag{
			Name:        "allow-origin",
			Usage:       "Origin allowed to call the API from a browser (empty disables CORS)",
			Value:       "https://www.zotero.org",
			Destination: &c.AllowOrigin,
			Sources:     cli.EnvVars("ZOTDAV_ALLOW_ORIGIN"),
		},
	}
}
