// Package proc reports facts about the running process that are attached to every
// metric as constant labels: host name, program name, build version and the first
// non-loopback IPv4 address.
//
// Every value is resolved once and cached for the life of the process. Lookups that
// fail yield Unknown rather than an error, so callers can use the values directly as
// label values.
package proc
