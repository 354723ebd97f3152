// Package config loads the configuration of every redmetrics package from a YAML
// file, an optional .env file and the environment, in increasing order of
// precedence.
//
//	service: checkout
//	logger:
//	  level: debug
//	httpmetrics:
//	  max_path_labels: 500
//	  rules:
//	    - pattern: '/users/\d+'
//	sqlmetrics:
//	  driver: postgres
//	  stats_interval: 30s
//
// Environment variables are those documented on each package's Config, e.g.
// LOGGER_LEVEL or HTTPMETRICS_MAX_PATH_LABELS. Rules can only be set in YAML.
package config
