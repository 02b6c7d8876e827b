// Package commands implements the secretfinder command line: recovering
// secrets from share files, splitting a secret into share files and
// verifying shares against a published commitment.
package commands
