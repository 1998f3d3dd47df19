// Package main Starter Kit Server API
//
//	@title			Starter Kit Server API
//	@version		1.0
//	@description	HTTP service skeleton with a uniform response envelope and global error handling.
//
//	@contact.name	Starter Kit Maintainers
//
//	@license.name	MIT
//
//	@host			localhost:5000
//
//	@tag.name			System
//	@tag.description	Liveness and health endpoints
package main
